package billing

import (
	"encoding/json"
	"time"

	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

const ProviderStripe = "stripe"

// VerifyStripePayload checks the Stripe-Signature header and returns
// the parsed event.
func VerifyStripePayload(payload []byte, sigHeader, webhookSecret string) (stripe.Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, webhookSecret)
	if err != nil {
		return stripe.Event{}, ErrSignatureInvalid
	}
	return ev, nil
}

// DecodeStripeEvent maps a Stripe event onto a PlanEvent. The second
// return value is false for event types this platform ignores.
//
// Checkout sessions and subscriptions carry user_id/tier metadata set
// at session creation; invoice events identify the account by customer
// reference only.
func DecodeStripeEvent(ev stripe.Event) (*PlanEvent, bool, error) {
	out := &PlanEvent{
		Provider:   ProviderStripe,
		OccurredAt: time.Unix(ev.Created, 0),
	}

	switch ev.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &session); err != nil {
			return nil, false, ErrEventMalformed
		}
		out.Type = EventCheckoutCompleted
		if err := applyMetadata(out, session.Metadata); err != nil {
			return nil, false, err
		}
		if session.Customer != nil {
			out.CustomerRef = session.Customer.ID
		}
		if session.Subscription != nil {
			out.SubscriptionRef = session.Subscription.ID
		}

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, false, ErrEventMalformed
		}
		out.Type = EventSubscriptionUpdated
		if err := applyMetadata(out, sub.Metadata); err != nil {
			return nil, false, err
		}
		if sub.Customer != nil {
			out.CustomerRef = sub.Customer.ID
		}
		out.SubscriptionRef = sub.ID
		out.PeriodStart = time.Unix(sub.CurrentPeriodStart, 0)
		out.PeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0)
		out.CancelAtPeriodEnd = sub.CancelAtPeriodEnd

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, false, ErrEventMalformed
		}
		out.Type = EventSubscriptionDeleted
		if sub.Customer != nil {
			out.CustomerRef = sub.Customer.ID
		}
		out.SubscriptionRef = sub.ID
		if uid, ok := sub.Metadata["user_id"]; ok {
			parsed, err := uuid.Parse(uid)
			if err != nil {
				return nil, false, ErrEventMalformed
			}
			out.UserId = parsed
		}

	case "invoice.payment_succeeded", "invoice.paid":
		var inv stripe.Invoice
		if err := json.Unmarshal(ev.Data.Raw, &inv); err != nil {
			return nil, false, ErrEventMalformed
		}
		out.Type = EventPaymentSucceeded
		if inv.Customer != nil {
			out.CustomerRef = inv.Customer.ID
		}
		if inv.Subscription != nil {
			out.SubscriptionRef = inv.Subscription.ID
		}

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(ev.Data.Raw, &inv); err != nil {
			return nil, false, ErrEventMalformed
		}
		out.Type = EventPaymentFailed
		if inv.Customer != nil {
			out.CustomerRef = inv.Customer.ID
		}
		if inv.Subscription != nil {
			out.SubscriptionRef = inv.Subscription.ID
		}

	default:
		return nil, false, nil
	}

	if out.UserId == uuid.Nil && out.CustomerRef == "" {
		return nil, false, ErrEventMalformed
	}
	return out, true, nil
}

func applyMetadata(out *PlanEvent, metadata map[string]string) error {
	uid, ok := metadata["user_id"]
	if !ok {
		return ErrEventMalformed
	}
	parsed, err := uuid.Parse(uid)
	if err != nil {
		return ErrEventMalformed
	}
	out.UserId = parsed

	tier, ok := plancatalog.ParseTier(metadata["tier"])
	if !ok {
		return ErrEventMalformed
	}
	out.Tier = tier
	return nil
}
