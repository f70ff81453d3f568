package controller

import (
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/pkg/serverutils"
	"resume-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	adminService    service.IAdminService
	templateService service.ITemplateService
}

func NewAdminController(adminService service.IAdminService, templateService service.ITemplateService) IAdminController {
	return &adminController{
		adminService:    adminService,
		templateService: templateService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)

	h.Get("dashboard", c.Dashboard)
	h.Get("logs", c.GetLogs)

	h.Get("users", c.ListUsers)
	h.Get("users/:id", c.GetUserDetail)
	h.Put("users/:id", c.UpdateUser)
	h.Put("users/:id/plan", c.SetPlan)
	h.Post("users/:id/credits", c.GrantCredits)

	h.Post("templates", c.CreateTemplate)
	h.Put("templates/:id", c.UpdateTemplate)
	h.Delete("templates/:id", c.DeleteTemplate)
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.Dashboard(ctx.Context())
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetLogs(ctx.Context(),
		ctx.Query("level"),
		ctx.QueryInt("limit", 100),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.adminService.ListUsers(ctx.Context(), &query, ctx.Query("plan"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) GetUserDetail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	res, err := c.adminService.GetUserDetail(ctx.Context(), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get user detail", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.AdminUpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUser(ctx.Context(), id, &req); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User updated", nil))
}

func (c *adminController) SetPlan(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.AdminSetPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.SetPlan(ctx.Context(), currentUserId(ctx), id, &req); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Plan updated", nil))
}

func (c *adminController) GrantCredits(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.AdminGrantCreditsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.GrantCredits(ctx.Context(), currentUserId(ctx), id, &req); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Credits granted", nil))
}

func (c *adminController) CreateTemplate(ctx *fiber.Ctx) error {
	var req dto.AdminTemplateCreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.templateService.AdminCreate(ctx.Context(), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Template created", res))
}

func (c *adminController) UpdateTemplate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}

	var req dto.AdminTemplateUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.templateService.AdminUpdate(ctx.Context(), id, &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Template updated", res))
}

func (c *adminController) DeleteTemplate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}

	if err := c.templateService.AdminDelete(ctx.Context(), id); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Template deactivated", nil))
}
