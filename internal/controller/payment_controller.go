package controller

import (
	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/pkg/serverutils"
	"ai-faq-generator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	ListPlans(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")

	// Public: plan catalog and the Midtrans webhook.
	h.Get("plans", c.ListPlans)
	h.Post("notification", c.Notification)

	h.Use(serverutils.JwtMiddleware)
	h.Post("checkout", c.Checkout)
}

func (c *paymentController) ListPlans(ctx *fiber.Ctx) error {
	res, err := c.paymentService.ListPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Available plans", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}
