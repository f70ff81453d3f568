package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TemplateBrief struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	IsPremium  bool      `json:"is_premium"`
	PreviewURL string    `json:"preview_url,omitempty"`
}

type TemplateResponse struct {
	Id          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsPremium   bool            `json:"is_premium"`
	Structure   json.RawMessage `json:"structure"`
	PreviewURL  string          `json:"preview_url,omitempty"`
	// Locked is true when the template is premium and the caller's plan
	// does not include premium templates.
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Total     int64              `json:"total"`
}

// --- Admin template management ---

type AdminTemplateCreateRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Slug        string          `json:"slug" validate:"required,min=1,max=255"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsPremium   bool            `json:"is_premium"`
	Structure   json.RawMessage `json:"structure" validate:"required"`
	PreviewURL  string          `json:"preview_url,omitempty" validate:"omitempty,url"`
	SortOrder   int             `json:"sort_order"`
}

type AdminTemplateUpdateRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	IsPremium   *bool           `json:"is_premium,omitempty"`
	Structure   json.RawMessage `json:"structure,omitempty"`
	PreviewURL  *string         `json:"preview_url,omitempty" validate:"omitempty,url"`
	IsActive    *bool           `json:"is_active,omitempty"`
	SortOrder   *int            `json:"sort_order,omitempty"`
}
