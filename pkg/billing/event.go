// Typed billing events. Webhook receivers (Stripe, Midtrans) decode
// provider payloads into PlanEvent; the transition handler only ever
// sees this shape.
package billing

import (
	"errors"
	"time"

	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout_completed"
	EventSubscriptionUpdated EventType = "subscription_updated"
	EventSubscriptionDeleted EventType = "subscription_deleted"
	EventPaymentSucceeded    EventType = "payment_succeeded"
	EventPaymentFailed       EventType = "payment_failed"
)

var (
	// ErrEventMalformed marks a billing event missing required fields.
	ErrEventMalformed = errors.New("plan event malformed")
	// ErrSignatureInvalid marks a webhook that failed verification.
	ErrSignatureInvalid = errors.New("invalid webhook signature")
)

// PlanEvent is the provider-neutral shape handed to the plan
// transition handler. Exactly one of UserId or CustomerRef identifies
// the account: metadata-carrying events set UserId directly, invoice
// events only know the provider's customer reference.
type PlanEvent struct {
	Type              EventType
	UserId            uuid.UUID
	CustomerRef       string
	SubscriptionRef   string
	Provider          string
	Tier              plancatalog.Tier
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
	OccurredAt        time.Time
}

// Validate checks the fields the transition handler depends on.
func (e *PlanEvent) Validate() error {
	if e.UserId == uuid.Nil && e.CustomerRef == "" {
		return ErrEventMalformed
	}
	switch e.Type {
	case EventCheckoutCompleted, EventSubscriptionUpdated:
		if _, ok := plancatalog.ParseTier(string(e.Tier)); !ok {
			return ErrEventMalformed
		}
	case EventSubscriptionDeleted, EventPaymentSucceeded, EventPaymentFailed:
		// No tier required; the handler derives everything else.
	default:
		return ErrEventMalformed
	}
	return nil
}
