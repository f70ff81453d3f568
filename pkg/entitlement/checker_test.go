package entitlement

import (
	"testing"

	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"

	"github.com/stretchr/testify/assert"
)

func ledger(created, resumeLimit, used, creditLimit int) *entity.UsageLedger {
	return &entity.UsageLedger{
		ResumesCreated: created,
		ResumesLimit:   resumeLimit,
		AiCreditsUsed:  used,
		AiCreditsLimit: creditLimit,
	}
}

func TestCanCreateResume(t *testing.T) {
	tests := []struct {
		name    string
		created int
		limit   int
		want    bool
	}{
		{name: "below limit", created: 0, limit: 1, want: true},
		{name: "at limit", created: 1, limit: 1, want: false},
		{name: "above limit after downgrade", created: 5, limit: 1, want: false},
		{name: "unlimited", created: 1, limit: -1, want: true},
		{name: "unlimited with huge counter", created: 1 << 30, limit: -1, want: true},
		{name: "unlimited with negative counter", created: -3, limit: -1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanCreateResume(ledger(tt.created, tt.limit, 0, 10))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanUseAI(t *testing.T) {
	assert.True(t, CanUseAI(ledger(0, 1, 9, 10)))
	assert.False(t, CanUseAI(ledger(0, 1, 10, 10)))
	// Usage above limit (downgrade case) stays blocked.
	assert.False(t, CanUseAI(ledger(0, 1, 40, 10)))
	assert.True(t, CanUseAI(ledger(0, 1, 40, -1)))
}

func TestRemaining(t *testing.T) {
	l := ledger(1, 3, 40, 100)
	assert.Equal(t, 2, RemainingResumes(l))
	assert.Equal(t, 60, RemainingAICredits(l))

	// Floor at zero when a lowered limit is below usage.
	assert.Equal(t, 0, RemainingAICredits(ledger(0, 1, 40, 10)))

	// Sentinel passthrough.
	assert.Equal(t, plancatalog.Unlimited, RemainingResumes(ledger(7, -1, 0, 10)))
}

func TestTierGates(t *testing.T) {
	assert.False(t, CanAccessPremiumTemplate(plancatalog.TierFree))
	assert.True(t, CanAccessPremiumTemplate(plancatalog.TierPro))
	assert.True(t, CanAccessPremiumTemplate(plancatalog.TierEnterprise))

	assert.False(t, CanUseATSOptimization(plancatalog.TierFree))
	assert.True(t, CanUseATSOptimization(plancatalog.TierPro))
}

// Scenario from a fresh free account: one resume allowed, then blocked.
func TestFreeAccountScenario(t *testing.T) {
	limits := plancatalog.Limits(plancatalog.TierFree)
	l := ledger(0, limits.Resumes, 0, limits.AICredits)

	assert.True(t, CanCreateResume(l))
	l.ResumesCreated++
	assert.False(t, CanCreateResume(l))

	// Checkout to PRO resizes limits without touching counters.
	proLimits := plancatalog.Limits(plancatalog.TierPro)
	l.ResumesLimit = proLimits.Resumes
	l.AiCreditsLimit = proLimits.AICredits
	assert.True(t, CanCreateResume(l))
	assert.Equal(t, 1, l.ResumesCreated)
}
