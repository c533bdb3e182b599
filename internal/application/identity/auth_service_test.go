package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/auth"
)

type fakeUserRepo struct {
	users map[uuid.UUID]identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	r.users[user.ID] = *user
	return nil
}

type fakeIssuer struct {
	expiresAt time.Time
}

func (i *fakeIssuer) Issue(userID uuid.UUID, _ string, _ identity.Role) (string, time.Time, error) {
	return "token-for-" + userID.String(), i.expiresAt, nil
}

func newAuthEnv() (*AuthService, *fakeUserRepo, *auth.InMemoryTokenBlacklist) {
	users := newFakeUserRepo()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(users, &fakeIssuer{expiresAt: time.Now().Add(time.Hour)}, blacklist)
	return svc, users, blacklist
}

func registerTestUser(t *testing.T, svc *AuthService, email string) *UserResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		FullName: "Test User",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register(t *testing.T) {
	t.Run("normalizes the email and defaults the role", func(t *testing.T) {
		svc, _, _ := newAuthEnv()

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "  Alice@Example.COM ",
			FullName: "Alice",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.Equal(t, string(identity.RoleStaff), resp.Role)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate email rejected regardless of case", func(t *testing.T) {
		svc, _, _ := newAuthEnv()
		registerTestUser(t, svc, "alice@example.com")

		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "ALICE@example.com",
			FullName: "Alice Again",
			Password: "correct-horse",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	})

	t.Run("explicit role kept", func(t *testing.T) {
		svc, _, _ := newAuthEnv()

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "bob@example.com",
			FullName: "Bob",
			Password: "correct-horse",
			Role:     "manager",
		})
		require.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc, _, _ := newAuthEnv()
		registered := registerTestUser(t, svc, "alice@example.com")

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, registered.ID, resp.User.ID)
	})

	t.Run("wrong password and unknown email return the same error", func(t *testing.T) {
		svc, _, _ := newAuthEnv()
		registerTestUser(t, svc, "alice@example.com")

		_, wrongPassword := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		_, unknownEmail := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})

		var pwErr, emailErr *shared.DomainError
		require.ErrorAs(t, wrongPassword, &pwErr)
		require.ErrorAs(t, unknownEmail, &emailErr)
		assert.Equal(t, "INVALID_CREDENTIALS", pwErr.Code)
		assert.Equal(t, pwErr.Code, emailErr.Code)
		assert.Equal(t, pwErr.Message, emailErr.Message)
	})

	t.Run("disabled account rejected", func(t *testing.T) {
		svc, users, _ := newAuthEnv()
		registered := registerTestUser(t, svc, "alice@example.com")

		user := users.users[registered.ID]
		user.Deactivate()
		users.users[registered.ID] = user

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("blacklists the token until it expires", func(t *testing.T) {
		svc, _, blacklist := newAuthEnv()

		err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))
		require.NoError(t, err)

		revoked, err := blacklist.Contains(context.Background(), "some-jti")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("already-expired token skipped", func(t *testing.T) {
		svc, _, blacklist := newAuthEnv()

		err := svc.Logout(context.Background(), "stale-jti", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		revoked, err := blacklist.Contains(context.Background(), "stale-jti")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("replaces the password", func(t *testing.T) {
		svc, _, _ := newAuthEnv()
		registered := registerTestUser(t, svc, "alice@example.com")

		err := svc.ChangePassword(context.Background(), registered.ID, ChangePasswordRequest{
			CurrentPassword: "correct-horse",
			NewPassword:     "battery-staple",
		})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "battery-staple",
		})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		assert.Error(t, err)
	})

	t.Run("wrong current password rejected", func(t *testing.T) {
		svc, _, _ := newAuthEnv()
		registered := registerTestUser(t, svc, "alice@example.com")

		err := svc.ChangePassword(context.Background(), registered.ID, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "battery-staple",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_GetProfile(t *testing.T) {
	svc, _, _ := newAuthEnv()
	registered := registerTestUser(t, svc, "alice@example.com")

	resp, err := svc.GetProfile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
