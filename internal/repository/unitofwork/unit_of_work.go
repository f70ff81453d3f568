package unitofwork

import (
	"context"

	"resume-builder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	UsageLedgerRepository() contract.UsageLedgerRepository
	SubscriptionRepository() contract.SubscriptionRepository
	ResumeRepository() contract.ResumeRepository
	TemplateRepository() contract.TemplateRepository
	ResumeEmbeddingRepository() contract.ResumeEmbeddingRepository
	JobApplicationRepository() contract.JobApplicationRepository
	AiInteractionRepository() contract.AiInteractionRepository
	AnalyticsRepository() contract.AnalyticsRepository
	NotificationRepository() contract.NotificationRepository
}
