package controller

import (
	"resume-builder-be/internal/pkg/serverutils"
	"resume-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router)
}

type usageController struct {
	usageService service.IUsageService
}

func NewUsageController(usageService service.IUsageService) IUsageController {
	return &usageController{
		usageService: usageService,
	}
}

func (c *usageController) RegisterRoutes(r fiber.Router) {
	// The catalog is public so the pricing page needs no session.
	r.Get("/plans/v1", c.GetPlans)

	h := r.Group("/usage/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("status", c.GetStatus)
}

func (c *usageController) GetStatus(ctx *fiber.Ctx) error {
	res, err := c.usageService.GetUsageStatus(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get usage status", res))
}

func (c *usageController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.usageService.GetPlans(ctx.Context())
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get plans", res))
}
