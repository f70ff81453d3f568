package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription status mirrors the billing provider's vocabulary.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// BillingSubscription is created lazily on first checkout, updated by
// inbound billing events, and never deleted - only status-transitioned.
type BillingSubscription struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	Provider           string // "stripe" or "midtrans"
	CustomerRef        string
	SubscriptionRef    string
	Status             string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	CanceledAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
