// Pure yes/no capability checks over a ledger snapshot. No side
// effects; call immediately before the corresponding mutator. The
// final enforcement point is the conditional UPDATE in the ledger
// repository - these checks exist for friendly denial responses.
package entitlement

import (
	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"
)

// CanCreateResume reports whether one more resume may be created.
// A -1 limit always allows, regardless of the counter's value.
func CanCreateResume(ledger *entity.UsageLedger) bool {
	if ledger.ResumesLimit == plancatalog.Unlimited {
		return true
	}
	return ledger.ResumesCreated < ledger.ResumesLimit
}

// CanUseAI reports whether at least one AI credit remains.
func CanUseAI(ledger *entity.UsageLedger) bool {
	if ledger.AiCreditsLimit == plancatalog.Unlimited {
		return true
	}
	return ledger.AiCreditsUsed < ledger.AiCreditsLimit
}

// CanAccessPremiumTemplate is derived from the catalog, not the ledger.
func CanAccessPremiumTemplate(tier plancatalog.Tier) bool {
	return plancatalog.Limits(tier).PremiumTemplates
}

// CanUseATSOptimization gates the resume/job matching feature.
func CanUseATSOptimization(tier plancatalog.Tier) bool {
	return plancatalog.Limits(tier).ATSOptimization
}

// RemainingResumes returns max(0, limit-used), passing the unlimited
// sentinel through.
func RemainingResumes(ledger *entity.UsageLedger) int {
	return remaining(ledger.ResumesCreated, ledger.ResumesLimit)
}

// RemainingAICredits returns max(0, limit-used), passing the unlimited
// sentinel through.
func RemainingAICredits(ledger *entity.UsageLedger) int {
	return remaining(ledger.AiCreditsUsed, ledger.AiCreditsLimit)
}

func remaining(used, limit int) int {
	if limit == plancatalog.Unlimited {
		return plancatalog.Unlimited
	}
	if r := limit - used; r > 0 {
		return r
	}
	return 0
}
