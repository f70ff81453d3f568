package contract

import (
	"context"
	"errors"

	"resume-builder-be/internal/entity"

	"github.com/google/uuid"
)

// ErrLedgerNotFound signals a mutator touched a user with no ledger
// row. Mutators never create ledgers; only the read path seeds them.
var ErrLedgerNotFound = errors.New("usage ledger not found")

// ErrLimitReached signals a conditional increment was refused because
// the counter already sits at its plan ceiling.
var ErrLimitReached = errors.New("usage limit reached")

// ErrInvalidCreditAmount rejects a consume call with a non-positive
// amount before any SQL runs.
var ErrInvalidCreditAmount = errors.New("credit amount must be positive")

type UsageLedgerRepository interface {
	Create(ctx context.Context, ledger *entity.UsageLedger) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UsageLedger, error)

	// IncrementResumesCreated atomically bumps resumes_created, but only
	// while the counter is below resumes_limit or the limit is -1. Returns
	// ErrLimitReached when the ceiling refuses the bump and
	// ErrLedgerNotFound when no row exists for the user.
	IncrementResumesCreated(ctx context.Context, userId uuid.UUID) error

	// DecrementResumesCreated lowers the counter, flooring at zero.
	DecrementResumesCreated(ctx context.Context, userId uuid.UUID) error

	// ConsumeAICredits spends n credits under the same conditional rules
	// as IncrementResumesCreated. Non-positive n is refused with
	// ErrInvalidCreditAmount.
	ConsumeAICredits(ctx context.Context, userId uuid.UUID, n int) error

	IncrementViews(ctx context.Context, userId uuid.UUID) error
	IncrementDownloads(ctx context.Context, userId uuid.UUID) error
	IncrementPremiumTemplatesUsed(ctx context.Context, userId uuid.UUID) error

	// ResizeLimits rewrites the plan ceilings without touching any used
	// counters.
	ResizeLimits(ctx context.Context, userId uuid.UUID, resumesLimit, aiCreditsLimit int) error

	// ResetAICredits zeroes ai_credits_used and stamps last_reset_at.
	ResetAICredits(ctx context.Context, userId uuid.UUID) error

	// GrantExtraAICredits raises ai_credits_limit by n, skipping rows
	// already at the unlimited sentinel.
	GrantExtraAICredits(ctx context.Context, userId uuid.UUID, n int) error

	SumAiCalls(ctx context.Context) (int64, error)
}
