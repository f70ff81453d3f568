package serverutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponse(t *testing.T) {
	res := SuccessResponse("done", map[string]int{"n": 1})

	assert.True(t, res.Success)
	assert.Equal(t, "done", res.Message)
	assert.Equal(t, 1, res.Data["n"])

	t.Run("nil data is omitted from the body", func(t *testing.T) {
		raw, err := json.Marshal(SuccessResponse[any]("ok", nil))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"data"`)
	})
}

func TestErrorResponse(t *testing.T) {
	res := ErrorResponse(404, "not found")

	assert.False(t, res.Success)
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "not found", res.Message)
}

func TestValidateRequest(t *testing.T) {
	type loginReq struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	t.Run("valid request passes", func(t *testing.T) {
		err := ValidateRequest(loginReq{Email: "a@b.co", Password: "longenough"})
		assert.NoError(t, err)
	})

	t.Run("failures are flattened into one message", func(t *testing.T) {
		err := ValidateRequest(loginReq{Email: "nope", Password: "short"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email failed on 'email'")
		assert.Contains(t, err.Error(), "Password failed on 'min'")
	})
}
