package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Admin user management ---

type AdminUserListItem struct {
	Id            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	Plan          string     `json:"plan"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AdminUserListResponse struct {
	Users      []AdminUserListItem `json:"users"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

type AdminUserDetailResponse struct {
	User         AdminUserListItem     `json:"user"`
	Usage        *UsageStatusResponse  `json:"usage,omitempty"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	ResumeCount  int64                 `json:"resume_count"`
}

type AdminUpdateUserRequest struct {
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}

// AdminSetPlanRequest overrides a user's plan outside the payment flow.
type AdminSetPlanRequest struct {
	Tier   string `json:"tier" validate:"required,oneof=FREE PRO ENTERPRISE"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// AdminGrantCreditsRequest raises a user's AI credit limit for the
// current period.
type AdminGrantCreditsRequest struct {
	Credits int    `json:"credits" validate:"required,min=1,max=10000"`
	Reason  string `json:"reason" validate:"required,min=3"`
}

// --- Admin dashboard ---

type AdminDashboardResponse struct {
	TotalUsers        int64            `json:"total_users"`
	ActiveUsers       int64            `json:"active_users"`
	TotalResumes      int64            `json:"total_resumes"`
	TotalAiCalls      int64            `json:"total_ai_calls"`
	PlanDistribution  map[string]int64 `json:"plan_distribution"`
	SignupsLast30Days int64            `json:"signups_last_30_days"`
}
