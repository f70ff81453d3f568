package dto

import (
	"time"

	"github.com/google/uuid"
)

type EnhanceTextRequest struct {
	ResumeId *uuid.UUID `json:"resume_id,omitempty"`
	Section  string     `json:"section" validate:"required,oneof=summary experience education skills projects"`
	Text     string     `json:"text" validate:"required,min=10,max=5000"`
	Tone     string     `json:"tone,omitempty" validate:"omitempty,oneof=professional concise impactful"`
}

type EnhanceTextResponse struct {
	Enhanced      string `json:"enhanced"`
	CreditsUsed   int    `json:"credits_used"`
	CreditsRemain int    `json:"credits_remaining"`
}

type AnalyzeResumeRequest struct {
	ResumeId uuid.UUID `json:"resume_id" validate:"required"`
}

type AnalyzeResumeResponse struct {
	Score         int      `json:"score"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Suggestions   []string `json:"suggestions"`
	CreditsUsed   int      `json:"credits_used"`
	CreditsRemain int      `json:"credits_remaining"`
}

type AiChatRequest struct {
	SessionId *string    `json:"session_id,omitempty"`
	ResumeId  *uuid.UUID `json:"resume_id,omitempty"`
	Message   string     `json:"message" validate:"required,min=1,max=4000"`
}

type AiChatResponse struct {
	SessionId     string `json:"session_id"`
	Reply         string `json:"reply"`
	CreditsUsed   int    `json:"credits_used"`
	CreditsRemain int    `json:"credits_remaining"`
}

// MatchJobRequest scores a resume against a job description using
// embedding similarity.
type MatchJobRequest struct {
	ResumeId       uuid.UUID `json:"resume_id" validate:"required"`
	JobDescription string    `json:"job_description" validate:"required,min=50,max=20000"`
}

type MatchJobResponse struct {
	MatchScore      float64  `json:"match_score"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
	CreditsUsed     int      `json:"credits_used"`
	CreditsRemain   int      `json:"credits_remaining"`
}

type AiHistoryItem struct {
	Id          uuid.UUID  `json:"id"`
	ResumeId    *uuid.UUID `json:"resume_id,omitempty"`
	Kind        string     `json:"kind"`
	Prompt      string     `json:"prompt"`
	Response    string     `json:"response"`
	CreditsUsed int        `json:"credits_used"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AiHistoryResponse struct {
	Items []AiHistoryItem `json:"items"`
	Total int64           `json:"total"`
}
