package dto

import (
	"encoding/json"
	"time"
)

// UsageLimit reports a single counter against its plan ceiling.
// Limit -1 means unlimited.
type UsageLimit struct {
	Used   int  `json:"used"`
	Limit  int  `json:"limit"`
	CanUse bool `json:"can_use"`
}

type PlanFeatures struct {
	PremiumTemplates bool `json:"premium_templates"`
	ATSOptimization  bool `json:"ats_optimization"`
	PrioritySupport  bool `json:"priority_support"`
}

// UsageStatusResponse is returned by GET /api/usage/status.
type UsageStatusResponse struct {
	Plan             string       `json:"plan"`
	Resumes          UsageLimit   `json:"resumes"`
	AiCredits        UsageLimit   `json:"ai_credits"`
	TotalViews       int          `json:"total_views"`
	TotalDownloads   int          `json:"total_downloads"`
	Features         PlanFeatures `json:"features"`
	LastResetAt      *time.Time   `json:"last_reset_at,omitempty"`
	UpgradeAvailable bool         `json:"upgrade_available"`
}

// PlanResponse is returned by GET /api/plans (public catalog).
type PlanResponse struct {
	Tier             string `json:"tier"`
	ResumeLimit      int    `json:"resume_limit"`
	AiCreditsLimit   int    `json:"ai_credits_limit"`
	PremiumTemplates bool   `json:"premium_templates"`
	ATSOptimization  bool   `json:"ats_optimization"`
	PrioritySupport  bool   `json:"priority_support"`
}

// Limit kinds used in denial responses.
const (
	LimitTypeResumes         = "resumes"
	LimitTypeAiCredits       = "ai_credits"
	LimitTypePremiumTemplate = "premium_template"
	LimitTypeATS             = "ats_optimization"
)

// Machine-readable denial kinds carried alongside the limit type.
const (
	ErrorCodeLimitReached       = "LIMIT_REACHED"
	ErrorCodeAiCreditsExhausted = "AI_CREDITS_EXHAUSTED"
)

// LimitExceededError is returned when an entitlement check denies an
// action. Controllers translate it to 403 with an upgrade hint.
type LimitExceededError struct {
	LimitType string `json:"limit_type"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Plan      string `json:"plan"`
}

// Code returns the denial kind clients branch on.
func (e *LimitExceededError) Code() string {
	if e.LimitType == LimitTypeAiCredits {
		return ErrorCodeAiCreditsExhausted
	}
	return ErrorCodeLimitReached
}

// MarshalJSON derives the code from the limit type so every
// construction site emits it.
func (e *LimitExceededError) MarshalJSON() ([]byte, error) {
	type plain LimitExceededError
	return json.Marshal(struct {
		Code string `json:"code"`
		*plain
	}{Code: e.Code(), plain: (*plain)(e)})
}

func (e *LimitExceededError) Error() string {
	switch e.LimitType {
	case LimitTypeAiCredits:
		return "ai credit limit reached for current plan"
	case LimitTypePremiumTemplate:
		return "premium templates require an upgraded plan"
	case LimitTypeATS:
		return "ats optimization requires an upgraded plan"
	default:
		return "resume limit reached for current plan"
	}
}
