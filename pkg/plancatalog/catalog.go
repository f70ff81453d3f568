// Static plan catalog. Every limit-writing operation (ledger seeding,
// plan transitions, admin overrides) must derive values from here.
package plancatalog

// Unlimited is the sentinel value for numeric limits.
const Unlimited = -1

type Tier string

const (
	TierFree       Tier = "FREE"
	TierPro        Tier = "PRO"
	TierEnterprise Tier = "ENTERPRISE"
)

// PlanLimits describes what a tier is entitled to.
// Resumes and AICredits use -1 for unlimited.
type PlanLimits struct {
	Resumes          int
	AICredits        int
	PremiumTemplates bool
	ATSOptimization  bool
	PrioritySupport  bool
}

var catalog = map[Tier]PlanLimits{
	TierFree: {
		Resumes:   1,
		AICredits: 10,
	},
	TierPro: {
		Resumes:          Unlimited,
		AICredits:        100,
		PremiumTemplates: true,
		ATSOptimization:  true,
	},
	TierEnterprise: {
		Resumes:          Unlimited,
		AICredits:        Unlimited,
		PremiumTemplates: true,
		ATSOptimization:  true,
		PrioritySupport:  true,
	},
}

// Limits is total over the tier enum: unknown tiers fall back to FREE
// so a corrupted plan column can never grant more than the free tier.
func Limits(tier Tier) PlanLimits {
	if l, ok := catalog[tier]; ok {
		return l
	}
	return catalog[TierFree]
}

// ParseTier normalizes a stored plan string to a known tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierFree, TierPro, TierEnterprise:
		return Tier(s), true
	}
	return TierFree, false
}

// AllTiers returns the tiers in display order.
func AllTiers() []Tier {
	return []Tier{TierFree, TierPro, TierEnterprise}
}
