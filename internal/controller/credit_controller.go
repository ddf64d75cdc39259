package controller

import (
	"ai-faq-generator-be/internal/pkg/serverutils"
	"ai-faq-generator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
}

type creditController struct {
	faqService service.IFaqService
}

func NewCreditController(faqService service.IFaqService) ICreditController {
	return &creditController{
		faqService: faqService,
	}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credits/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Summary)
}

func (c *creditController) Summary(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.faqService.Credits(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Credit summary", res))
}
