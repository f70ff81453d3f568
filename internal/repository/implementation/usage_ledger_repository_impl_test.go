package implementation

import (
	"context"
	"testing"

	"resume-builder-be/internal/repository/contract"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockLedgerRepo(t *testing.T) (contract.UsageLedgerRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUsageLedgerRepository(db), mock
}

func TestIncrementPremiumTemplatesUsed(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the boolean flag", func(t *testing.T) {
		repo, mock := newMockLedgerRepo(t)
		userId := uuid.New()

		// The column is a bool; the statement must assign true, never
		// arithmetic on the column.
		mock.ExpectExec(`UPDATE "usage_ledgers" SET "premium_templates_used"=\$1 WHERE user_id = \$2`).
			WithArgs(true, userId).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementPremiumTemplatesUsed(ctx, userId)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row reports ledger not found", func(t *testing.T) {
		repo, mock := newMockLedgerRepo(t)
		userId := uuid.New()

		mock.ExpectExec(`UPDATE "usage_ledgers" SET "premium_templates_used"=\$1 WHERE user_id = \$2`).
			WithArgs(true, userId).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementPremiumTemplatesUsed(ctx, userId)
		assert.ErrorIs(t, err, contract.ErrLedgerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConsumeAICredits(t *testing.T) {
	ctx := context.Background()

	t.Run("guarded conditional update", func(t *testing.T) {
		repo, mock := newMockLedgerRepo(t)
		userId := uuid.New()

		mock.ExpectExec(`UPDATE "usage_ledgers" SET "ai_credits_used"=ai_credits_used \+ \$1 WHERE user_id = \$2 AND \(ai_credits_limit = -1 OR ai_credits_used \+ \$3 <= ai_credits_limit\)`).
			WithArgs(1, userId, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ConsumeAICredits(ctx, userId, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive amounts are rejected without SQL", func(t *testing.T) {
		repo, mock := newMockLedgerRepo(t)

		for _, n := range []int{0, -3} {
			err := repo.ConsumeAICredits(ctx, uuid.New(), n)
			assert.ErrorIs(t, err, contract.ErrInvalidCreditAmount)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
