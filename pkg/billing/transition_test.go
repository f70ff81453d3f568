package billing

import (
	"testing"
	"time"

	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeState() (*entity.User, *entity.BillingSubscription, *entity.UsageLedger) {
	userId := uuid.New()
	limits := plancatalog.Limits(plancatalog.TierFree)
	user := &entity.User{Id: userId, Plan: plancatalog.TierFree}
	sub := &entity.BillingSubscription{UserId: userId}
	ledger := &entity.UsageLedger{
		UserId:         userId,
		ResumesLimit:   limits.Resumes,
		AiCreditsLimit: limits.AICredits,
	}
	return user, sub, ledger
}

func TestCheckoutCompletedToPro(t *testing.T) {
	user, sub, ledger := freeState()
	ledger.ResumesCreated = 1 // free user already at their limit

	now := time.Now()
	err := ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:            EventCheckoutCompleted,
		UserId:          user.Id,
		Provider:        ProviderStripe,
		Tier:            plancatalog.TierPro,
		CustomerRef:     "cus_123",
		SubscriptionRef: "sub_123",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, plancatalog.TierPro, user.Plan)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "cus_123", sub.CustomerRef)
	assert.Equal(t, plancatalog.Unlimited, ledger.ResumesLimit)
	assert.Equal(t, 100, ledger.AiCreditsLimit)
	// Counters are never reset by a checkout.
	assert.Equal(t, 1, ledger.ResumesCreated)
	assert.False(t, sub.CurrentPeriodEnd.IsZero())
}

func TestDowngradeDoesNotEraseUsage(t *testing.T) {
	user, sub, ledger := freeState()
	user.Plan = plancatalog.TierPro
	sub.Status = entity.SubscriptionStatusActive
	ledger.AiCreditsUsed = 40
	ledger.AiCreditsLimit = 100

	now := time.Now()
	err := ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:   EventSubscriptionDeleted,
		UserId: user.Id,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, plancatalog.TierFree, user.Plan)
	assert.Equal(t, entity.SubscriptionStatusCanceled, sub.Status)
	require.NotNil(t, sub.CanceledAt)
	assert.Equal(t, now, *sub.CanceledAt)
	assert.Equal(t, 10, ledger.AiCreditsLimit)
	assert.Equal(t, 40, ledger.AiCreditsUsed)
}

func TestPaymentSucceededResetsCredits(t *testing.T) {
	user, sub, ledger := freeState()
	sub.Status = entity.SubscriptionStatusPastDue
	ledger.AiCreditsUsed = 73
	ledger.ResumesCreated = 4

	now := time.Now()
	err := ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:   EventPaymentSucceeded,
		UserId: user.Id,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 0, ledger.AiCreditsUsed)
	assert.Equal(t, now, ledger.LastResetAt)
	assert.Equal(t, 4, ledger.ResumesCreated)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
}

func TestPaymentFailedOnlyMarksPastDue(t *testing.T) {
	user, sub, ledger := freeState()
	user.Plan = plancatalog.TierPro
	sub.Status = entity.SubscriptionStatusActive
	ledger.AiCreditsLimit = 100

	err := ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:   EventPaymentFailed,
		UserId: user.Id,
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, entity.SubscriptionStatusPastDue, sub.Status)
	assert.Equal(t, plancatalog.TierPro, user.Plan)
	assert.Equal(t, 100, ledger.AiCreditsLimit)
}

func TestSubscriptionUpdatedTracksCancelFlag(t *testing.T) {
	user, sub, ledger := freeState()
	start := time.Now()
	end := start.AddDate(0, 1, 0)

	err := ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:              EventSubscriptionUpdated,
		UserId:            user.Id,
		Tier:              plancatalog.TierEnterprise,
		PeriodStart:       start,
		PeriodEnd:         end,
		CancelAtPeriodEnd: true,
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, plancatalog.TierEnterprise, user.Plan)
	assert.True(t, sub.CancelAtPeriodEnd)
	assert.Equal(t, end, sub.CurrentPeriodEnd)
	assert.Equal(t, plancatalog.Unlimited, ledger.AiCreditsLimit)
}

func TestMalformedEvents(t *testing.T) {
	user, sub, ledger := freeState()

	// No account reference at all.
	err := ApplyTransition(user, sub, ledger, &PlanEvent{Type: EventPaymentFailed}, time.Now())
	assert.ErrorIs(t, err, ErrEventMalformed)

	// Checkout without a recognizable tier.
	err = ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:   EventCheckoutCompleted,
		UserId: user.Id,
		Tier:   plancatalog.Tier("platinum"),
	}, time.Now())
	assert.ErrorIs(t, err, ErrEventMalformed)

	// Unknown event type.
	err = ApplyTransition(user, sub, ledger, &PlanEvent{
		Type:   EventType("trial_will_end"),
		UserId: user.Id,
	}, time.Now())
	assert.ErrorIs(t, err, ErrEventMalformed)
}
