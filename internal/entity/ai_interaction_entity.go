package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AiInteractionKind string

const (
	AiKindEnhance AiInteractionKind = "enhance"
	AiKindAnalyze AiInteractionKind = "analyze"
	AiKindChat    AiInteractionKind = "chat"
	AiKindMatch   AiInteractionKind = "match"
)

type AiInteraction struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	ResumeId    *uuid.UUID
	Kind        AiInteractionKind
	Prompt      string
	Response    string
	Context     json.RawMessage
	CreditsUsed int
	CreatedAt   time.Time
}
