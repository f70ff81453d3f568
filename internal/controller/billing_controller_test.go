package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-builder-be/internal/dto"
	"resume-builder-be/pkg/billing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBillingService struct {
	webhookErr error
}

func (s *stubBillingService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error) {
	return nil, nil
}

func (s *stubBillingService) HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	return s.webhookErr
}

func (s *stubBillingService) HandleMidtransNotification(ctx context.Context, payload []byte) error {
	return s.webhookErr
}

func (s *stubBillingService) GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	return nil, nil
}

func (s *stubBillingService) CancelSubscription(ctx context.Context, userId uuid.UUID) (*dto.CancelSubscriptionResponse, error) {
	return nil, nil
}

func (s *stubBillingService) BillingPortal(ctx context.Context, userId uuid.UUID) (*dto.BillingPortalResponse, error) {
	return nil, nil
}

func newWebhookApp(webhookErr error) *fiber.App {
	app := fiber.New()
	NewBillingController(&stubBillingService{webhookErr: webhookErr}).RegisterRoutes(app.Group("/api"))
	return app
}

func postWebhook(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestWebhookResponses(t *testing.T) {
	for _, path := range []string{"/api/webhook/v1/stripe", "/api/webhook/v1/midtrans"} {
		t.Run(path, func(t *testing.T) {
			t.Run("bad signature is rejected", func(t *testing.T) {
				app := newWebhookApp(billing.ErrSignatureInvalid)
				assert.Equal(t, fiber.StatusBadRequest, postWebhook(t, app, path))
			})

			t.Run("malformed event is rejected", func(t *testing.T) {
				app := newWebhookApp(billing.ErrEventMalformed)
				assert.Equal(t, fiber.StatusBadRequest, postWebhook(t, app, path))
			})

			t.Run("persistence failure is still acknowledged", func(t *testing.T) {
				// A non-2xx here would make the provider redeliver a
				// payload that already verified; the failure is logged
				// and the delivery acked.
				app := newWebhookApp(errors.New("connection refused"))
				assert.Equal(t, fiber.StatusOK, postWebhook(t, app, path))
			})

			t.Run("success acks", func(t *testing.T) {
				app := newWebhookApp(nil)

				req := httptest.NewRequest("POST", path, strings.NewReader("{}"))
				req.Header.Set("Content-Type", "application/json")
				resp, err := app.Test(req)
				require.NoError(t, err)
				require.Equal(t, fiber.StatusOK, resp.StatusCode)

				var body map[string]bool
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.True(t, body["received"])
			})
		})
	}
}
