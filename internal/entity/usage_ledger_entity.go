package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageLedger is the per-account row of usage counters and limits.
// Limits use -1 as the unlimited sentinel. A limit lowered below the
// current counter is valid; it blocks further use, nothing is deleted.
type UsageLedger struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	ResumesCreated       int
	ResumesLimit         int // -1 = unlimited
	AiCreditsUsed        int
	AiCreditsLimit       int // -1 = unlimited
	TotalViews           int
	TotalDownloads       int
	PremiumTemplatesUsed bool
	LastResetAt          time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
