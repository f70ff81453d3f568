package service

import (
	"context"
	"errors"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/entitlement"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
)

type IUsageService interface {
	GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
	GetPlans(ctx context.Context) ([]dto.PlanResponse, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
	}
}

// GetUsageStatus is the only place a missing ledger row gets created.
// Accounts registered before the ledger table existed, or created by
// OAuth shortcuts, are seeded here from their plan's catalog limits.
func (s *usageService) GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	ledger, err := ensureLedger(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	return buildUsageStatus(user, ledger), nil
}

func (s *usageService) GetPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	tiers := plancatalog.AllTiers()
	out := make([]dto.PlanResponse, 0, len(tiers))
	for _, tier := range tiers {
		limits := plancatalog.Limits(tier)
		out = append(out, dto.PlanResponse{
			Tier:             string(tier),
			ResumeLimit:      limits.Resumes,
			AiCreditsLimit:   limits.AICredits,
			PremiumTemplates: limits.PremiumTemplates,
			ATSOptimization:  limits.ATSOptimization,
			PrioritySupport:  limits.PrioritySupport,
		})
	}
	return out, nil
}

// ensureLedger returns the user's ledger, seeding one from the plan
// catalog when none exists yet. Mutators never create rows; services
// hitting ErrLedgerNotFound call this and retry once.
func ensureLedger(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (*entity.UsageLedger, error) {
	ledger, err := uow.UsageLedgerRepository().FindByUserId(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	if ledger != nil {
		return ledger, nil
	}

	limits := plancatalog.Limits(user.Plan)
	now := time.Now()
	ledger = &entity.UsageLedger{
		Id:             uuid.New(),
		UserId:         user.Id,
		ResumesLimit:   limits.Resumes,
		AiCreditsLimit: limits.AICredits,
		LastResetAt:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uow.UsageLedgerRepository().Create(ctx, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

func buildUsageStatus(user *entity.User, ledger *entity.UsageLedger) *dto.UsageStatusResponse {
	limits := plancatalog.Limits(user.Plan)
	lastReset := ledger.LastResetAt

	return &dto.UsageStatusResponse{
		Plan: string(user.Plan),
		Resumes: dto.UsageLimit{
			Used:   ledger.ResumesCreated,
			Limit:  ledger.ResumesLimit,
			CanUse: entitlement.CanCreateResume(ledger),
		},
		AiCredits: dto.UsageLimit{
			Used:   ledger.AiCreditsUsed,
			Limit:  ledger.AiCreditsLimit,
			CanUse: entitlement.CanUseAI(ledger),
		},
		TotalViews:     ledger.TotalViews,
		TotalDownloads: ledger.TotalDownloads,
		Features: dto.PlanFeatures{
			PremiumTemplates: limits.PremiumTemplates,
			ATSOptimization:  limits.ATSOptimization,
			PrioritySupport:  limits.PrioritySupport,
		},
		LastResetAt:      &lastReset,
		UpgradeAvailable: user.Plan != plancatalog.TierEnterprise,
	}
}
