package controller

import (
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/pkg/serverutils"
	"resume-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
}

type aiController struct {
	aiService service.IAiService
}

func NewAiController(aiService service.IAiService) IAiController {
	return &aiController{
		aiService: aiService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("enhance", c.Enhance)
	h.Post("analyze", c.Analyze)
	h.Post("chat", c.Chat)
	h.Post("match", c.MatchJob)
	h.Get("history", c.History)
}

func (c *aiController) Enhance(ctx *fiber.Ctx) error {
	var req dto.EnhanceTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.EnhanceText(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success enhance text", res))
}

func (c *aiController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.AnalyzeResume(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success analyze resume", res))
}

func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var req dto.AiChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.Chat(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *aiController) MatchJob(ctx *fiber.Ctx) error {
	var req dto.MatchJobRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.MatchJob(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success match job", res))
}

func (c *aiController) History(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.aiService.History(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}
