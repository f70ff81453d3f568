package model

import (
	"time"

	"github.com/google/uuid"
)

type BillingSubscription struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Provider           string    `gorm:"type:varchar(50);not null"`
	CustomerRef        string    `gorm:"type:varchar(255);index"`
	SubscriptionRef    string    `gorm:"type:varchar(255);index"`
	Status             string    `gorm:"type:varchar(50);not null"`
	CurrentPeriodStart time.Time `gorm:"not null"`
	CurrentPeriodEnd   time.Time `gorm:"not null"`
	CancelAtPeriodEnd  bool      `gorm:"default:false"`
	CanceledAt         *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (BillingSubscription) TableName() string {
	return "billing_subscriptions"
}
