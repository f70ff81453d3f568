package controller

import (
	"errors"
	"fmt"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/pkg/serverutils"
	"resume-builder-be/internal/service"
	"resume-builder-be/pkg/billing"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
}

type billingController struct {
	billingService service.IBillingService
}

func NewBillingController(billingService service.IBillingService) IBillingController {
	return &billingController{
		billingService: billingService,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	// Provider callbacks authenticate through signatures, not sessions.
	w := r.Group("/webhook/v1")
	w.Post("stripe", c.StripeWebhook)
	w.Post("midtrans", c.MidtransWebhook)

	h := r.Group("/billing/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("checkout", c.CreateCheckout)
	h.Get("subscription", c.GetSubscription)
	h.Post("cancel", c.CancelSubscription)
	h.Get("portal", c.BillingPortal)
}

func (c *billingController) CreateCheckout(ctx *fiber.Ctx) error {
	var req dto.CreateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.CreateCheckout(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *billingController) GetSubscription(ctx *fiber.Ctx) error {
	res, err := c.billingService.GetSubscription(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription", res))
}

func (c *billingController) CancelSubscription(ctx *fiber.Ctx) error {
	res, err := c.billingService.CancelSubscription(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription will lapse at period end", res))
}

func (c *billingController) BillingPortal(ctx *fiber.Ctx) error {
	res, err := c.billingService.BillingPortal(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create portal session", res))
}

// StripeWebhook hands the raw body to signature verification; any
// parsing before that would break it.
func (c *billingController) StripeWebhook(ctx *fiber.Ctx) error {
	err := c.billingService.HandleStripeWebhook(ctx.Context(), ctx.Body(), ctx.Get("Stripe-Signature"))
	return webhookOutcome(ctx, "stripe", err)
}

func (c *billingController) MidtransWebhook(ctx *fiber.Ctx) error {
	err := c.billingService.HandleMidtransNotification(ctx.Context(), ctx.Body())
	return webhookOutcome(ctx, "midtrans", err)
}

// webhookOutcome rejects only payloads the provider should re-sign or
// fix. Everything else is acknowledged: providers retry on non-2xx,
// and a transient persistence failure must not trigger a retry storm.
func webhookOutcome(ctx *fiber.Ctx, provider string, err error) error {
	if errors.Is(err, billing.ErrSignatureInvalid) || errors.Is(err, billing.ErrEventMalformed) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		fmt.Printf("[WARN] Failed to apply %s webhook: %v\n", provider, err)
	}
	return ctx.JSON(fiber.Map{"received": true})
}
