package serverutils

import (
	"errors"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/pkg/faqgen/parser"
	"ai-faq-generator-be/pkg/genai"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns typed service errors into the envelope the
// clients expect. Raw model output and driver errors never reach the wire.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.LimitExceededResponse{
				Success:   false,
				Code:      fiber.StatusTooManyRequests,
				Message:   limitErr.Error(),
				ErrorType: "quota_exceeded",
				Data: dto.LimitExceededData{
					Limit:            limitErr.Limit,
					Used:             limitErr.Used,
					ResetAfter:       limitErr.ResetAfter,
					ShowModalPricing: true,
				},
			})
		}

		var inputErr *dto.InputError
		if errors.As(err, &inputErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, inputErr.Message))
		}

		var notFoundErr *dto.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, notFoundErr.Error()))
		}

		if errors.Is(err, genai.ErrRateLimited) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(
				NewTypedErrorResponse(429, "the model is receiving too many requests, try again shortly", "upstream_rate_limited"))
		}

		var upstreamErr *genai.UpstreamError
		if errors.As(err, &upstreamErr) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(
				NewTypedErrorResponse(500, "the model could not process the request", "upstream_error"))
		}

		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(
				NewTypedErrorResponse(500, "the model returned an unusable answer", "malformed_model_output"))
		}

		var storageErr *dto.StorageError
		if errors.As(err, &storageErr) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(
				NewTypedErrorResponse(500, "could not persist the result", "storage_error"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}
