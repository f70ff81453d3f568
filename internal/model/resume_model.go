package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Resume struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	TemplateId    *uuid.UUID     `gorm:"type:uuid;index"`
	Title         string         `gorm:"type:varchar(255);not null"`
	ShareSlug     string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Data          datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	IsPublic      bool           `gorm:"default:false"`
	ViewCount     int            `gorm:"not null;default:0"`
	DownloadCount int            `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Resume) TableName() string {
	return "resumes"
}

type Template struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Slug        string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(100);index"`
	IsPremium   bool           `gorm:"default:false"`
	Structure   datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	PreviewURL  string         `gorm:"type:text"`
	IsActive    bool           `gorm:"default:true"`
	SortOrder   int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Template) TableName() string {
	return "templates"
}

type ResumeEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResumeId       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensionality
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (ResumeEmbedding) TableName() string {
	return "resume_embeddings"
}
