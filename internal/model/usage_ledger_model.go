package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageLedger is the single shared mutable row per account. All
// counter mutations go through conditional UPDATE statements in the
// repository, never read-modify-write in the process.
type UsageLedger struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ResumesCreated       int       `gorm:"not null;default:0"`
	ResumesLimit         int       `gorm:"not null;default:1"` // -1 = unlimited
	AiCreditsUsed        int       `gorm:"not null;default:0"`
	AiCreditsLimit       int       `gorm:"not null;default:10"` // -1 = unlimited
	TotalViews           int       `gorm:"not null;default:0"`
	TotalDownloads       int       `gorm:"not null;default:0"`
	PremiumTemplatesUsed bool      `gorm:"default:false"`
	LastResetAt          time.Time `gorm:"not null;default:now()"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (UsageLedger) TableName() string {
	return "usage_ledgers"
}
