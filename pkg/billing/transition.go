package billing

import (
	"time"

	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"
)

// ApplyTransition mutates the user, subscription and ledger in memory
// according to one billing event. The caller persists all three inside
// a single transaction; partial application is never valid.
//
// Used-counters survive every transition except the monthly credit
// refresh: a user who spent 40 of 100 credits and downgrades keeps 40
// used against the new, smaller limit.
func ApplyTransition(user *entity.User, sub *entity.BillingSubscription, ledger *entity.UsageLedger, ev *PlanEvent, now time.Time) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	switch ev.Type {
	case EventCheckoutCompleted:
		user.Plan = ev.Tier
		sub.Provider = ev.Provider
		if ev.CustomerRef != "" {
			sub.CustomerRef = ev.CustomerRef
		}
		if ev.SubscriptionRef != "" {
			sub.SubscriptionRef = ev.SubscriptionRef
		}
		sub.Status = entity.SubscriptionStatusActive
		setPeriod(sub, ev, now)
		resizeLimits(ledger, ev.Tier)

	case EventSubscriptionUpdated:
		user.Plan = ev.Tier
		sub.Status = entity.SubscriptionStatusActive
		sub.CancelAtPeriodEnd = ev.CancelAtPeriodEnd
		if ev.SubscriptionRef != "" {
			sub.SubscriptionRef = ev.SubscriptionRef
		}
		setPeriod(sub, ev, now)
		resizeLimits(ledger, ev.Tier)

	case EventSubscriptionDeleted:
		user.Plan = plancatalog.TierFree
		sub.Status = entity.SubscriptionStatusCanceled
		canceledAt := now
		sub.CanceledAt = &canceledAt
		resizeLimits(ledger, plancatalog.TierFree)

	case EventPaymentSucceeded:
		// Monthly credit refresh; resumes_created is untouched.
		ledger.AiCreditsUsed = 0
		ledger.LastResetAt = now
		if sub.Status == entity.SubscriptionStatusPastDue {
			sub.Status = entity.SubscriptionStatusActive
		}

	case EventPaymentFailed:
		// Grace period: status only, plan and limits stay.
		sub.Status = entity.SubscriptionStatusPastDue
	}

	return nil
}

func setPeriod(sub *entity.BillingSubscription, ev *PlanEvent, now time.Time) {
	if !ev.PeriodStart.IsZero() {
		sub.CurrentPeriodStart = ev.PeriodStart
	} else if sub.CurrentPeriodStart.IsZero() {
		sub.CurrentPeriodStart = now
	}
	if !ev.PeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = ev.PeriodEnd
	} else if sub.CurrentPeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = now.AddDate(0, 1, 0)
	}
}

func resizeLimits(ledger *entity.UsageLedger, tier plancatalog.Tier) {
	limits := plancatalog.Limits(tier)
	ledger.ResumesLimit = limits.Resumes
	ledger.AiCreditsLimit = limits.AICredits
}
