package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByShareSlug struct {
	Slug string
}

func (s ByShareSlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("share_slug = ?", s.Slug)
}

type PublicOnly struct{}

func (s PublicOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_public = true")
}

type ByResumeID struct {
	ResumeID uuid.UUID
}

func (s ByResumeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resume_id = ?", s.ResumeID)
}

type SearchByTitle struct {
	Query string
}

func (s SearchByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}

// Template Specs

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ActiveTemplates struct{}

func (s ActiveTemplates) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = true")
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type FreeTemplatesOnly struct{}

func (s FreeTemplatesOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_premium = false")
}
