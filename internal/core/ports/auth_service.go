package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is returned by operations that establish a session: the stored
// user (hash never serialized) plus a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService orchestrates signup, login and password maintenance on top of
// the credential store and the token service.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// VerifiedUser loads the user identified by a verified token's subject.
	// Backs the verify endpoint.
	VerifiedUser(ctx context.Context, userID string) (*domain.User, error)
	// ChangePassword re-verifies oldPassword before replacing the stored hash,
	// regardless of the requester already holding a valid token.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	// ForgotPassword never reports whether the account exists; reset delivery
	// is out-of-band.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a single-use reset token and stores a new hash.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
