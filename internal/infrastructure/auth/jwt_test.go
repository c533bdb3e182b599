package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-bytes-long!",
		AccessTokenExpiration: expiration,
		Issuer:                "warehouse-backend-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	userID := uuid.New()

	token, expiresAt, err := svc.Issue(userID, "alice@example.com", identity.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "warehouse-backend-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "JTI must be set for blacklisting")

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.WithinDuration(t, expiresAt, claims.GetExpiresAtTime(), time.Second)
}

func TestJWTService_Validate(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		svc := newTestJWTService(-time.Minute)
		token, _, err := svc.Issue(uuid.New(), "alice@example.com", identity.RoleStaff)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-also-32-bytes-long!!",
			AccessTokenExpiration: time.Hour,
			Issuer:                "warehouse-backend-test",
		})

		token, _, err := other.Issue(uuid.New(), "alice@example.com", identity.RoleStaff)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("each issue gets a fresh JTI", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		userID := uuid.New()

		first, _, err := svc.Issue(userID, "alice@example.com", identity.RoleStaff)
		require.NoError(t, err)
		second, _, err := svc.Issue(userID, "alice@example.com", identity.RoleStaff)
		require.NoError(t, err)

		firstClaims, err := svc.Validate(first)
		require.NoError(t, err)
		secondClaims, err := svc.Validate(second)
		require.NoError(t, err)
		assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("added token is contained", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.Add(ctx, "jti-1", time.Hour))

		revoked, err := blacklist.Contains(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown token is not contained", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		revoked, err := blacklist.Contains(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entry lapses after its TTL", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.Add(ctx, "jti-2", -time.Second))

		revoked, err := blacklist.Contains(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
