package model

import (
	"time"

	"github.com/google/uuid"
)

type AnalyticsEvent struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_analytics_user_created,priority:1"`
	ResumeId  uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType string    `gorm:"type:varchar(50);not null;index"`
	Referrer  string    `gorm:"type:text"`
	UserAgent string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_analytics_user_created,priority:2"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
