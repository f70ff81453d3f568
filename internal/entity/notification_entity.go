package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationWelcome        NotificationType = "welcome"
	NotificationPlanChanged    NotificationType = "plan_changed"
	NotificationPaymentFailed  NotificationType = "payment_failed"
	NotificationCreditsLow     NotificationType = "credits_low"
	NotificationResumeViewed   NotificationType = "resume_viewed"
	NotificationJobStatusMoved NotificationType = "job_status_moved"
	NotificationAnalysisReady  NotificationType = "analysis_ready"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TypeCode  NotificationType
	Title     string
	Message   string
	Metadata  json.RawMessage
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
