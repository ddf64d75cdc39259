package controller

import (
	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/pkg/serverutils"
	"ai-faq-generator-be/internal/service"
	"ai-faq-generator-be/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFaqController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddQuestion(ctx *fiber.Ctx) error
	UpdateItem(ctx *fiber.Ctx) error
	DeleteItem(ctx *fiber.Ctx) error
}

type faqController struct {
	faqService service.IFaqService
	limiter    *ratelimit.Limiter
}

func NewFaqController(faqService service.IFaqService, limiter *ratelimit.Limiter) IFaqController {
	return &faqController{
		faqService: faqService,
		limiter:    limiter,
	}
}

func (c *faqController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/faq/v1")

	// Shareable by link, no auth.
	h.Get(":id", c.Show)

	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Delete(":id", c.Delete)
	h.Put(":id/items/:itemId", c.UpdateItem)
	h.Delete(":id/items/:itemId", c.DeleteItem)

	generate := h.Group("")
	if c.limiter != nil {
		generate.Use(c.limiter.Middleware())
	}
	generate.Post("generate", c.Generate)
	generate.Post(":id/question", c.AddQuestion)
}

func (c *faqController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GenerateFaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.faqService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate faq", res))
}

func (c *faqController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.faqService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get faqs", res))
}

func (c *faqController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid faq ID"))
	}

	res, err := c.faqService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show faq", res))
}

func (c *faqController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid faq ID"))
	}

	if err := c.faqService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete faq", nil))
}

func (c *faqController) AddQuestion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid faq ID"))
	}

	var req dto.AddQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.DocumentId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.faqService.AddQuestion(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add question", res))
}

func (c *faqController) UpdateItem(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid faq ID"))
	}

	var req dto.UpdateFaqItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.DocumentId = id
	req.ItemId = ctx.Params("itemId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.faqService.UpdateItem(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update faq item", res))
}

func (c *faqController) DeleteItem(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid faq ID"))
	}

	res, err := c.faqService.DeleteItem(ctx.Context(), userId, id, ctx.Params("itemId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete faq item", res))
}
