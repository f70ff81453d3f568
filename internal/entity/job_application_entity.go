package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobApplicationStatus string

const (
	JobStatusSaved     JobApplicationStatus = "saved"
	JobStatusApplied   JobApplicationStatus = "applied"
	JobStatusInterview JobApplicationStatus = "interview"
	JobStatusOffer     JobApplicationStatus = "offer"
	JobStatusRejected  JobApplicationStatus = "rejected"
)

type JobApplication struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	ResumeId    *uuid.UUID
	Company     string
	Position    string
	Location    string
	SalaryRange string
	JobURL      string
	Status      JobApplicationStatus
	Notes       string
	AppliedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
