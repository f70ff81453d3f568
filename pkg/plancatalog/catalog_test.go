package plancatalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimits(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		want PlanLimits
	}{
		{
			name: "free tier",
			tier: TierFree,
			want: PlanLimits{Resumes: 1, AICredits: 10},
		},
		{
			name: "pro tier",
			tier: TierPro,
			want: PlanLimits{Resumes: Unlimited, AICredits: 100, PremiumTemplates: true, ATSOptimization: true},
		},
		{
			name: "enterprise tier",
			tier: TierEnterprise,
			want: PlanLimits{Resumes: Unlimited, AICredits: Unlimited, PremiumTemplates: true, ATSOptimization: true, PrioritySupport: true},
		},
		{
			name: "unknown tier falls back to free",
			tier: Tier("LEGACY_GOLD"),
			want: PlanLimits{Resumes: 1, AICredits: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Limits(tt.tier))
		})
	}
}

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier("PRO")
	assert.True(t, ok)
	assert.Equal(t, TierPro, tier)

	tier, ok = ParseTier("gold")
	assert.False(t, ok)
	assert.Equal(t, TierFree, tier)
}

func TestAllTiersCoveredByCatalog(t *testing.T) {
	for _, tier := range AllTiers() {
		limits := Limits(tier)
		// A limit of 0 would silently disable a feature; the catalog
		// only uses positive values or the unlimited sentinel.
		assert.NotEqual(t, 0, limits.Resumes, "tier %s", tier)
		assert.NotEqual(t, 0, limits.AICredits, "tier %s", tier)
	}
}
