package mapper

import (
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.BillingSubscription) *entity.BillingSubscription {
	if s == nil {
		return nil
	}
	return &entity.BillingSubscription{
		Id:                 s.Id,
		UserId:             s.UserId,
		Provider:           s.Provider,
		CustomerRef:        s.CustomerRef,
		SubscriptionRef:    s.SubscriptionRef,
		Status:             s.Status,
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		CanceledAt:         s.CanceledAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.BillingSubscription) *model.BillingSubscription {
	if s == nil {
		return nil
	}
	return &model.BillingSubscription{
		Id:                 s.Id,
		UserId:             s.UserId,
		Provider:           s.Provider,
		CustomerRef:        s.CustomerRef,
		SubscriptionRef:    s.SubscriptionRef,
		Status:             s.Status,
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		CanceledAt:         s.CanceledAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
