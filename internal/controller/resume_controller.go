package controller

import (
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/pkg/serverutils"
	"resume-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
}

type resumeController struct {
	resumeService service.IResumeService
}

func NewResumeController(resumeService service.IResumeService) IResumeController {
	return &resumeController{
		resumeService: resumeService,
	}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	// Shared read-only view, reachable without a session.
	r.Get("/public/v1/resume/:slug", c.PublicView)

	h := r.Group("/resume/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/duplicate", c.Duplicate)
	h.Put(":id/share", c.UpdateShareSettings)
	h.Post(":id/download", c.Download)
}

func (c *resumeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resumeService.Create(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create resume", res))
}

func (c *resumeController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.resumeService.List(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list resumes", res))
}

func (c *resumeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}

	res, err := c.resumeService.Show(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show resume", res))
}

func (c *resumeController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}

	var req dto.UpdateResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resumeService.Update(ctx.Context(), currentUserId(ctx), id, &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update resume", res))
}

func (c *resumeController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}

	if err := c.resumeService.Delete(ctx.Context(), currentUserId(ctx), id); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete resume", nil))
}

func (c *resumeController) Duplicate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}

	var req dto.DuplicateResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resumeService.Duplicate(ctx.Context(), currentUserId(ctx), id, &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success duplicate resume", res))
}

func (c *resumeController) UpdateShareSettings(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}

	var req dto.ShareSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.resumeService.UpdateShareSettings(ctx.Context(), currentUserId(ctx), id, &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update share settings", res))
}

func (c *resumeController) Download(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}

	res, err := c.resumeService.Download(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success download resume", res))
}

func (c *resumeController) PublicView(ctx *fiber.Ctx) error {
	res, err := c.resumeService.GetPublicBySlug(ctx.Context(), ctx.Params("slug"), ctx.Get("Referer"), ctx.Get("User-Agent"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get resume", res))
}
