package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobApplication struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ResumeId    *uuid.UUID `gorm:"type:uuid;index"`
	Company     string     `gorm:"type:varchar(255);not null"`
	Position    string     `gorm:"type:varchar(255);not null"`
	Location    string     `gorm:"type:varchar(255)"`
	SalaryRange string     `gorm:"type:varchar(100)"`
	JobURL      string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(50);not null;default:'saved'"`
	Notes       string     `gorm:"type:text"`
	AppliedAt   *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
