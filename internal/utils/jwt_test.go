package utils

import (
	"testing"

	"bankcards/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := GenerateTokens(&models.UserClaims{
		UserID:       7,
		Email:        "user@example.com",
		Role:         models.RoleAdmin,
		TokenVersion: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	_, claims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "bankcards-api", claims.Issuer)
	assert.True(t, claims.IsAdmin())
}

func TestGenerateTokens_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, _, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
