package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PLAN_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes carried on the bus.
const (
	TypeUserRegistered   = "USER_REGISTERED"
	TypePlanChanged      = "PLAN_CHANGED"
	TypePaymentFailed    = "PAYMENT_FAILED"
	TypeResumeViewed     = "RESUME_VIEWED"
	TypeResumeDownloaded = "RESUME_DOWNLOADED"
	TypeCreditsLow       = "CREDITS_LOW"
	TypeJobStatusMoved   = "JOB_STATUS_MOVED"
)

func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
