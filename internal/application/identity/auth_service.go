package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
)

// TokenIssuer signs and verifies access tokens
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string, role identity.Role) (token string, expiresAt time.Time, err error)
}

// TokenBlacklist invalidates issued tokens before their natural expiry.
// Logout adds the token; the auth middleware checks membership.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// AuthService handles registration, login and logout
type AuthService struct {
	users     identity.UserRepository
	issuer    TokenIssuer
	blacklist TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, issuer TokenIssuer, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		users:     users,
		issuer:    issuer,
		blacklist: blacklist,
	}
}

// Register creates a new user account. The role defaults to staff when omitted.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "A user with this email already exists")
	}

	role := identity.Role(req.Role)
	if req.Role == "" {
		role = identity.RoleStaff
	}

	user, err := identity.NewUser(email, req.FullName, req.Password, role)
	if err != nil {
		return nil, err
	}
	user.Phone = req.Phone

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Login verifies credentials and issues an access token. Invalid email and
// wrong password return the same error so the response does not reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled")
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Logout blacklists the presented token for the remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Add(ctx, token, ttl)
}

// GetProfile retrieves the current user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}
