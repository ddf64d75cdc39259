package serverutils

// Response is the standard envelope for every JSON reply.
type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// TypedErrorResponse adds a machine-readable error_type so clients can
// branch without parsing messages.
type TypedErrorResponse struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

func NewTypedErrorResponse(code int, message, errorType string) TypedErrorResponse {
	return TypedErrorResponse{
		Success:   false,
		Code:      code,
		Message:   message,
		ErrorType: errorType,
	}
}
