package controller

import (
	"errors"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

// respondServiceError maps typed service errors onto status codes;
// anything unrecognized falls through to the error middleware.
func respondServiceError(ctx *fiber.Ctx, err error) error {
	var limitErr *dto.LimitExceededError
	if errors.As(err, &limitErr) {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusForbidden,
			"message": limitErr.Error(),
			"data":    limitErr,
		})
	}

	switch {
	case errors.Is(err, service.ErrResumeNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrJobApplicationNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoSubscription):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrTooManyAttempts):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrResumeNotIndexed):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}
