package controller

import (
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/pkg/serverutils"
	"resume-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IJobApplicationController interface {
	RegisterRoutes(r fiber.Router)
}

type jobApplicationController struct {
	jobService service.IJobApplicationService
}

func NewJobApplicationController(jobService service.IJobApplicationService) IJobApplicationController {
	return &jobApplicationController{
		jobService: jobService,
	}
}

func (c *jobApplicationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/job/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("stats", c.PipelineStats)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *jobApplicationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateJobApplicationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.jobService.Create(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create job application", res))
}

func (c *jobApplicationController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.jobService.List(ctx.Context(), currentUserId(ctx), &query, ctx.Query("status"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list job applications", res))
}

func (c *jobApplicationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid job application id")
	}

	res, err := c.jobService.Show(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show job application", res))
}

func (c *jobApplicationController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid job application id")
	}

	var req dto.UpdateJobApplicationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.jobService.Update(ctx.Context(), currentUserId(ctx), id, &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update job application", res))
}

func (c *jobApplicationController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid job application id")
	}

	if err := c.jobService.Delete(ctx.Context(), currentUserId(ctx), id); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete job application", nil))
}

func (c *jobApplicationController) PipelineStats(ctx *fiber.Ctx) error {
	res, err := c.jobService.PipelineStats(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get pipeline stats", res))
}
