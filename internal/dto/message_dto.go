package dto

import "github.com/google/uuid"

// Messages carried on the in-process watermill bus.

// PublishEmbedResumeMessage asks the consumer to (re)build the
// embedding for a resume after its content changed.
type PublishEmbedResumeMessage struct {
	ResumeId uuid.UUID `json:"resume_id"`
}

// PublishAnalyticsMessage records a public view or download without
// blocking the serving path.
type PublishAnalyticsMessage struct {
	UserId    uuid.UUID `json:"user_id"`
	ResumeId  uuid.UUID `json:"resume_id"`
	EventType string    `json:"event_type"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}
