package service

import (
	"encoding/hex"
	"testing"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitExceeded(t *testing.T) {
	user := &entity.User{Id: uuid.New(), Plan: plancatalog.TierFree}
	ledger := &entity.UsageLedger{
		ResumesCreated: 1,
		ResumesLimit:   1,
		AiCreditsUsed:  10,
		AiCreditsLimit: 10,
	}

	t.Run("resume limit carries resume counters", func(t *testing.T) {
		err := limitExceeded(dto.LimitTypeResumes, ledger, user)

		var limitErr *dto.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, dto.LimitTypeResumes, limitErr.LimitType)
		assert.Equal(t, 1, limitErr.Used)
		assert.Equal(t, 1, limitErr.Limit)
		assert.Equal(t, "FREE", limitErr.Plan)
	})

	t.Run("ai credit limit carries credit counters", func(t *testing.T) {
		err := limitExceeded(dto.LimitTypeAiCredits, ledger, user)

		var limitErr *dto.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, 10, limitErr.Used)
		assert.Equal(t, 10, limitErr.Limit)
	})

	t.Run("nil ledger still yields typed denial", func(t *testing.T) {
		err := limitExceeded(dto.LimitTypePremiumTemplate, nil, user)

		var limitErr *dto.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, dto.LimitTypePremiumTemplate, limitErr.LimitType)
		assert.Equal(t, 0, limitErr.Used)
	})
}

func TestNewShareSlug(t *testing.T) {
	slug := newShareSlug()

	assert.Len(t, slug, 16)
	_, err := hex.DecodeString(slug)
	assert.NoError(t, err)

	// Two draws must differ; collisions would leak other users' resumes.
	assert.NotEqual(t, slug, newShareSlug())
}
