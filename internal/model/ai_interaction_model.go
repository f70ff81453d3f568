package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AiInteraction struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ResumeId    *uuid.UUID     `gorm:"type:uuid;index"`
	Kind        string         `gorm:"type:varchar(50);not null;index"`
	Prompt      string         `gorm:"type:text;not null"`
	Response    string         `gorm:"type:text"`
	Context     datatypes.JSON `gorm:"type:jsonb"`
	CreditsUsed int            `gorm:"not null;default:1"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (AiInteraction) TableName() string {
	return "ai_interactions"
}
