package billing

import (
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"testing"

	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v78"
)

func stripeEvent(eventType string, raw string) stripe.Event {
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: json.RawMessage(raw)},
	}
}

func TestDecodeStripeCheckoutCompleted(t *testing.T) {
	userId := uuid.New()
	raw := fmt.Sprintf(`{"customer":"cus_9","subscription":"sub_9","metadata":{"user_id":"%s","tier":"PRO"}}`, userId)

	ev, handled, err := DecodeStripeEvent(stripeEvent("checkout.session.completed", raw))
	require.NoError(t, err)
	require.True(t, handled)

	assert.Equal(t, EventCheckoutCompleted, ev.Type)
	assert.Equal(t, userId, ev.UserId)
	assert.Equal(t, plancatalog.TierPro, ev.Tier)
	assert.Equal(t, "cus_9", ev.CustomerRef)
	assert.Equal(t, "sub_9", ev.SubscriptionRef)
}

func TestDecodeStripeSubscriptionDeleted(t *testing.T) {
	raw := `{"id":"sub_9","customer":"cus_9"}`

	ev, handled, err := DecodeStripeEvent(stripeEvent("customer.subscription.deleted", raw))
	require.NoError(t, err)
	require.True(t, handled)

	assert.Equal(t, EventSubscriptionDeleted, ev.Type)
	assert.Equal(t, "cus_9", ev.CustomerRef)
	assert.Equal(t, uuid.Nil, ev.UserId)
}

func TestDecodeStripeInvoiceEvents(t *testing.T) {
	raw := `{"customer":"cus_9","subscription":"sub_9"}`

	ev, handled, err := DecodeStripeEvent(stripeEvent("invoice.payment_succeeded", raw))
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, EventPaymentSucceeded, ev.Type)

	ev, handled, err = DecodeStripeEvent(stripeEvent("invoice.payment_failed", raw))
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, EventPaymentFailed, ev.Type)
}

func TestDecodeStripeIgnoresUnknownTypes(t *testing.T) {
	ev, handled, err := DecodeStripeEvent(stripeEvent("charge.refunded", `{}`))
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Nil(t, ev)
}

func TestDecodeStripeMalformedMetadata(t *testing.T) {
	// Checkout without user metadata cannot be attributed to an account.
	_, _, err := DecodeStripeEvent(stripeEvent("checkout.session.completed", `{"customer":"cus_9","metadata":{}}`))
	assert.ErrorIs(t, err, ErrEventMalformed)

	_, _, err = DecodeStripeEvent(stripeEvent("checkout.session.completed",
		`{"customer":"cus_9","metadata":{"user_id":"not-a-uuid","tier":"PRO"}}`))
	assert.ErrorIs(t, err, ErrEventMalformed)
}

func TestMidtransSignature(t *testing.T) {
	n := &MidtransNotification{
		OrderId:     "order-1",
		StatusCode:  "200",
		GrossAmount: "150000.00",
	}
	input := n.OrderId + n.StatusCode + n.GrossAmount + "server-key"
	n.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))

	assert.True(t, n.VerifySignature("server-key"))
	assert.False(t, n.VerifySignature("other-key"))
}

func TestDecodeMidtransNotification(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name     string
		status   string
		tier     string
		wantType EventType
		handled  bool
		wantErr  bool
	}{
		{name: "settlement activates", status: "settlement", tier: "PRO", wantType: EventCheckoutCompleted, handled: true},
		{name: "capture activates", status: "capture", tier: "ENTERPRISE", wantType: EventCheckoutCompleted, handled: true},
		{name: "expire fails payment", status: "expire", tier: "PRO", wantType: EventPaymentFailed, handled: true},
		{name: "pending ignored", status: "pending", tier: "PRO", handled: false},
		{name: "unknown ignored", status: "refund", tier: "PRO", handled: false},
		{name: "settlement with bad tier", status: "settlement", tier: "platinum", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, handled, err := DecodeMidtransNotification(&MidtransNotification{
				OrderId:           "order-1",
				TransactionStatus: tt.status,
				CustomField1:      userId.String(),
				CustomField2:      tt.tier,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEventMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.handled, handled)
			if tt.handled {
				assert.Equal(t, tt.wantType, ev.Type)
				assert.Equal(t, userId, ev.UserId)
				assert.Equal(t, ProviderMidtrans, ev.Provider)
			}
		})
	}
}

func TestDecodeMidtransBadUserId(t *testing.T) {
	_, _, err := DecodeMidtransNotification(&MidtransNotification{
		OrderId:           "order-1",
		TransactionStatus: "settlement",
		CustomField1:      "42",
		CustomField2:      "PRO",
	})
	assert.ErrorIs(t, err, ErrEventMalformed)
}
