package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Resume holds an opaque document body. The shape is validated at the
// API boundary; the interior stays an unparsed payload for storage.
type Resume struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	TemplateId    *uuid.UUID
	Title         string
	ShareSlug     string
	Data          json.RawMessage
	IsPublic      bool
	ViewCount     int
	DownloadCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Template struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Description string
	Category    string
	IsPremium   bool
	Structure   json.RawMessage
	PreviewURL  string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResumeEmbedding backs ATS matching; the vector is produced
// asynchronously by the consumer pipeline.
type ResumeEmbedding struct {
	Id        uuid.UUID
	ResumeId  uuid.UUID
	Embedding []float32
	UpdatedAt time.Time
}
