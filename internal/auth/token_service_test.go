package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/auth"
)

var testSigningKey = []byte("test-signing-key")

func TestTokenServiceGenerate(t *testing.T) {
	service := auth.NewTokenService(testSigningKey, 24, nil)

	t.Run("round-trips account id and role", func(t *testing.T) {
		token, err := service.Generate("account-123", auth.RoleAdmin)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "account-123", claims.AccountID())
		assert.Equal(t, auth.RoleAdmin, claims.Role())
	})

	t.Run("sets expiry from the configured TTL", func(t *testing.T) {
		before := time.Now()
		token, err := service.Generate("account-123", auth.RoleSuperAdmin)
		require.NoError(t, err)

		claims, err := service.Validate(token)
		require.NoError(t, err)

		expected := before.Add(24 * time.Hour)
		assert.True(t, claims.Expires().After(expected.Add(-time.Second)))
		assert.True(t, claims.Expires().Before(expected.Add(2*time.Second)))
		assert.False(t, claims.IssuedTime().IsZero())
	})
}

func TestTokenServiceValidate(t *testing.T) {
	service := auth.NewTokenService(testSigningKey, 24, nil)

	t.Run("expired token fails with the expired kind", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		token, err := service.SignClaims(&auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-123",
				IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(past),
			},
			UID:         "account-123",
			AccountRole: auth.RoleAdmin,
		})
		require.NoError(t, err)

		_, err = service.Validate(token)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpired(err))
		assert.False(t, auth.IsTokenMalformed(err))
	})

	t.Run("tampered signature fails as malformed, not expired", func(t *testing.T) {
		token, err := service.Generate("account-123", auth.RoleAdmin)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err = service.Validate(tampered)
		require.Error(t, err)
		assert.True(t, auth.IsTokenMalformed(err))
		assert.False(t, auth.IsTokenExpired(err))
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		other := auth.NewTokenService([]byte("rotated-secret"), 24, nil)
		token, err := other.Generate("account-123", auth.RoleAdmin)
		require.NoError(t, err)

		_, err = service.Validate(token)
		require.Error(t, err)
		assert.True(t, auth.IsTokenMalformed(err))
	})

	t.Run("garbage input is rejected", func(t *testing.T) {
		_, err := service.Validate("not-a-token")
		require.Error(t, err)
		assert.True(t, auth.IsTokenMalformed(err))
	})
}
