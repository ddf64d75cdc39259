package controller

import (
	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/pkg/serverutils"
	"ai-faq-generator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetUsage(ctx *fiber.Ctx) error
	SetLimitOverride(ctx *fiber.Ctx) error
	ResetUsage(ctx *fiber.Ctx) error
	GetTransactions(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("usage", c.GetUsage)
	h.Put("usage/override", c.SetLimitOverride)
	h.Post("usage/:userId/reset", c.ResetUsage)
	h.Get("usage/:userId/transactions", c.GetTransactions)
}

func (c *adminController) GetUsage(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.GetUsage(ctx.Context(), page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("User usage", res))
}

func (c *adminController) SetLimitOverride(ctx *fiber.Ctx) error {
	var req dto.AdminSetLimitOverrideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.SetLimitOverride(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Limit override updated", nil))
}

func (c *adminController) ResetUsage(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	if err := c.adminService.ResetUsage(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Usage reset", nil))
}

func (c *adminController) GetTransactions(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)

	res, err := c.adminService.GetTransactions(ctx.Context(), userId, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Credit transactions", res))
}
