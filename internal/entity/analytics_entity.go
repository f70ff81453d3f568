package entity

import (
	"time"

	"github.com/google/uuid"
)

type AnalyticsEventType string

const (
	AnalyticsEventView     AnalyticsEventType = "view"
	AnalyticsEventDownload AnalyticsEventType = "download"
)

type AnalyticsEvent struct {
	Id        uuid.UUID
	UserId    uuid.UUID // resume owner
	ResumeId  uuid.UUID
	EventType AnalyticsEventType
	Referrer  string
	UserAgent string
	CreatedAt time.Time
}
