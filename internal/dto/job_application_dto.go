package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobApplicationRequest struct {
	Company     string     `json:"company" validate:"required,min=1,max=255"`
	Position    string     `json:"position" validate:"required,min=1,max=255"`
	Location    string     `json:"location,omitempty" validate:"omitempty,max=255"`
	SalaryRange string     `json:"salary_range,omitempty" validate:"omitempty,max=100"`
	JobURL      string     `json:"job_url,omitempty" validate:"omitempty,url"`
	ResumeId    *uuid.UUID `json:"resume_id,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=saved applied interview offer rejected"`
	Notes       string     `json:"notes,omitempty"`
}

type UpdateJobApplicationRequest struct {
	Company     *string    `json:"company,omitempty" validate:"omitempty,min=1,max=255"`
	Position    *string    `json:"position,omitempty" validate:"omitempty,min=1,max=255"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	SalaryRange *string    `json:"salary_range,omitempty" validate:"omitempty,max=100"`
	JobURL      *string    `json:"job_url,omitempty" validate:"omitempty,url"`
	ResumeId    *uuid.UUID `json:"resume_id,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=saved applied interview offer rejected"`
	Notes       *string    `json:"notes,omitempty"`
}

type JobApplicationResponse struct {
	Id          uuid.UUID  `json:"id"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Location    string     `json:"location,omitempty"`
	SalaryRange string     `json:"salary_range,omitempty"`
	JobURL      string     `json:"job_url,omitempty"`
	ResumeId    *uuid.UUID `json:"resume_id,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type JobApplicationListResponse struct {
	Applications []JobApplicationResponse `json:"applications"`
	Total        int64                    `json:"total"`
	Page         int                      `json:"page"`
	PageSize     int                      `json:"page_size"`
}

// JobPipelineStats groups application counts by status for the board view.
type JobPipelineStats struct {
	Saved     int64 `json:"saved"`
	Applied   int64 `json:"applied"`
	Interview int64 `json:"interview"`
	Offer     int64 `json:"offer"`
	Rejected  int64 `json:"rejected"`
}
