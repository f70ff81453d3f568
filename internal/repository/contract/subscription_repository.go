package contract

import (
	"context"

	"resume-builder-be/internal/entity"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *entity.BillingSubscription) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BillingSubscription, error)
	FindByCustomerRef(ctx context.Context, provider, customerRef string) (*entity.BillingSubscription, error)
	FindBySubscriptionRef(ctx context.Context, provider, subscriptionRef string) (*entity.BillingSubscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
