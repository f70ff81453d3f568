package implementation

import (
	"context"
	"errors"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/mapper"
	"resume-builder-be/internal/model"
	"resume-builder-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

// Upsert keys on user_id so webhook retries stay idempotent.
func (r *SubscriptionRepositoryImpl) Upsert(ctx context.Context, sub *entity.BillingSubscription) error {
	modelSub := r.mapper.ToModel(sub)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"provider", "customer_ref", "subscription_ref", "status",
			"current_period_start", "current_period_end",
			"cancel_at_period_end", "canceled_at", "updated_at",
		}),
	}).Create(modelSub).Error
	if err != nil {
		return err
	}
	*sub = *r.mapper.ToEntity(modelSub)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BillingSubscription, error) {
	var modelSub model.BillingSubscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&modelSub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelSub), nil
}

func (r *SubscriptionRepositoryImpl) FindByCustomerRef(ctx context.Context, provider, customerRef string) (*entity.BillingSubscription, error) {
	var modelSub model.BillingSubscription
	err := r.db.WithContext(ctx).
		Where("provider = ? AND customer_ref = ?", provider, customerRef).
		First(&modelSub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelSub), nil
}

func (r *SubscriptionRepositoryImpl) FindBySubscriptionRef(ctx context.Context, provider, subscriptionRef string) (*entity.BillingSubscription, error) {
	var modelSub model.BillingSubscription
	err := r.db.WithContext(ctx).
		Where("provider = ? AND subscription_ref = ?", provider, subscriptionRef).
		First(&modelSub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelSub), nil
}

func (r *SubscriptionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.BillingSubscription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BillingSubscription{}).Error
}
