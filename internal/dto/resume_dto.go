package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateResumeRequest struct {
	Title      string          `json:"title" validate:"required,min=1,max=255"`
	TemplateId *uuid.UUID      `json:"template_id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type UpdateResumeRequest struct {
	Title      *string         `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	TemplateId *uuid.UUID      `json:"template_id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	IsPublic   *bool           `json:"is_public,omitempty"`
}

type ResumeResponse struct {
	Id            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	TemplateId    *uuid.UUID      `json:"template_id,omitempty"`
	ShareSlug     string          `json:"share_slug"`
	Data          json.RawMessage `json:"data"`
	IsPublic      bool            `json:"is_public"`
	ViewCount     int             `json:"view_count"`
	DownloadCount int             `json:"download_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ResumeListItem omits the document body for listing endpoints.
type ResumeListItem struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	TemplateId    *uuid.UUID `json:"template_id,omitempty"`
	ShareSlug     string     `json:"share_slug"`
	IsPublic      bool       `json:"is_public"`
	ViewCount     int        `json:"view_count"`
	DownloadCount int        `json:"download_count"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ResumeListResponse struct {
	Resumes    []ResumeListItem `json:"resumes"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// PublicResumeResponse is the shared, read-only view served by slug.
type PublicResumeResponse struct {
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	Template  *TemplateBrief  `json:"template,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type DuplicateResumeRequest struct {
	Title string `json:"title" validate:"omitempty,min=1,max=255"`
}

type ShareSettingsRequest struct {
	IsPublic bool `json:"is_public"`
}

type ShareSettingsResponse struct {
	ShareSlug string `json:"share_slug"`
	IsPublic  bool   `json:"is_public"`
	ShareURL  string `json:"share_url"`
}
