package service

import (
	"testing"

	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildUsageStatus(t *testing.T) {
	userId := uuid.New()

	t.Run("free tier exhausted", func(t *testing.T) {
		user := &entity.User{Id: userId, Plan: plancatalog.TierFree}
		ledger := &entity.UsageLedger{
			UserId:         userId,
			ResumesCreated: 1,
			ResumesLimit:   1,
			AiCreditsUsed:  10,
			AiCreditsLimit: 10,
		}

		status := buildUsageStatus(user, ledger)

		assert.Equal(t, "FREE", status.Plan)
		assert.False(t, status.Resumes.CanUse)
		assert.False(t, status.AiCredits.CanUse)
		assert.False(t, status.Features.PremiumTemplates)
		assert.True(t, status.UpgradeAvailable)
	})

	t.Run("pro tier unlimited resumes", func(t *testing.T) {
		user := &entity.User{Id: userId, Plan: plancatalog.TierPro}
		ledger := &entity.UsageLedger{
			UserId:         userId,
			ResumesCreated: 250,
			ResumesLimit:   plancatalog.Unlimited,
			AiCreditsUsed:  99,
			AiCreditsLimit: 100,
		}

		status := buildUsageStatus(user, ledger)

		assert.True(t, status.Resumes.CanUse)
		assert.Equal(t, plancatalog.Unlimited, status.Resumes.Limit)
		assert.True(t, status.AiCredits.CanUse)
		assert.True(t, status.Features.PremiumTemplates)
		assert.True(t, status.Features.ATSOptimization)
		assert.True(t, status.UpgradeAvailable)
	})

	t.Run("enterprise has no upgrade path", func(t *testing.T) {
		user := &entity.User{Id: userId, Plan: plancatalog.TierEnterprise}
		ledger := &entity.UsageLedger{
			UserId:         userId,
			ResumesLimit:   plancatalog.Unlimited,
			AiCreditsLimit: plancatalog.Unlimited,
		}

		status := buildUsageStatus(user, ledger)

		assert.False(t, status.UpgradeAvailable)
		assert.True(t, status.Features.PrioritySupport)
	})

	t.Run("limit lowered below counter blocks further use", func(t *testing.T) {
		// Downgrade keeps used counters; a ledger over its new ceiling
		// must read as blocked, not negative.
		user := &entity.User{Id: userId, Plan: plancatalog.TierFree}
		ledger := &entity.UsageLedger{
			UserId:         userId,
			ResumesCreated: 7,
			ResumesLimit:   1,
			AiCreditsUsed:  42,
			AiCreditsLimit: 10,
		}

		status := buildUsageStatus(user, ledger)

		assert.False(t, status.Resumes.CanUse)
		assert.Equal(t, 7, status.Resumes.Used)
		assert.False(t, status.AiCredits.CanUse)
	})
}
