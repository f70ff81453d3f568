package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitExceededErrorCode(t *testing.T) {
	tests := []struct {
		limitType string
		wantCode  string
	}{
		{LimitTypeResumes, ErrorCodeLimitReached},
		{LimitTypeAiCredits, ErrorCodeAiCreditsExhausted},
		{LimitTypePremiumTemplate, ErrorCodeLimitReached},
		{LimitTypeATS, ErrorCodeLimitReached},
	}

	for _, tt := range tests {
		t.Run(tt.limitType, func(t *testing.T) {
			e := &LimitExceededError{LimitType: tt.limitType}
			assert.Equal(t, tt.wantCode, e.Code())
		})
	}
}

func TestLimitExceededErrorJSON(t *testing.T) {
	e := &LimitExceededError{
		LimitType: LimitTypeAiCredits,
		Used:      10,
		Limit:     10,
		Plan:      "FREE",
	}

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "AI_CREDITS_EXHAUSTED", body["code"])
	assert.Equal(t, "ai_credits", body["limit_type"])
	assert.Equal(t, float64(10), body["used"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, "FREE", body["plan"])
}
