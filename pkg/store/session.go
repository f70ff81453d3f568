package store

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Role    string // "user" or "assistant"
	Content string
	At      time.Time
}

// Session holds the in-flight state of an AI chat conversation. It
// lives in the process cache only; the durable record is the
// ai_interactions table.
type Session struct {
	ID        string
	UserId    uuid.UUID
	ResumeId  *uuid.UUID
	Turns     []ChatTurn
	CreatedAt time.Time
}

func NewSession(userId uuid.UUID, resumeId *uuid.UUID) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserId:    userId,
		ResumeId:  resumeId,
		CreatedAt: time.Now(),
	}
}

func (s *Session) Append(role, content string) {
	s.Turns = append(s.Turns, ChatTurn{Role: role, Content: content, At: time.Now()})
}
