package service

import (
	"testing"
	"time"

	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/plancatalog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAccessToken(t *testing.T) {
	secret := "test-secret"
	user := &entity.User{
		Id:   uuid.New(),
		Role: entity.RoleUser,
		Plan: plancatalog.TierPro,
	}

	signed, err := signAccessToken(user, secret, 15*time.Minute)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.Id.String(), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, "PRO", claims["plan"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())

	// Wrong secret must not verify.
	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	// Deterministic, so stored hashes can be matched on refresh.
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
	assert.Len(t, hashToken("abc"), 64)
}

func TestRandomToken(t *testing.T) {
	a := randomToken()
	b := randomToken()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestUserToAuthInfo(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	user := &entity.User{
		Id:            uuid.New(),
		Email:         "jane@example.com",
		FullName:      "Jane Doe",
		Role:          entity.RoleAdmin,
		Plan:          plancatalog.TierEnterprise,
		EmailVerified: true,
		AvatarURL:     &avatar,
	}

	info := userToAuthInfo(user)

	assert.Equal(t, user.Id, info.Id)
	assert.Equal(t, "admin", info.Role)
	assert.Equal(t, "ENTERPRISE", info.Plan)
	assert.Equal(t, avatar, info.AvatarURL)

	user.AvatarURL = nil
	assert.Empty(t, userToAuthInfo(user).AvatarURL)
}
