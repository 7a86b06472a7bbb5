package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/payrollhq/payroll-system/internal/api/metrics"
	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

const resetTokenTTL = 15 * time.Minute

// dummyHash is compared against when login targets an unknown email, so the
// not-found path costs the same as a wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ResetTokenStore holds short-lived password-reset tokens. Delivery of the
// token to the user is out-of-band.
type ResetTokenStore interface {
	SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	// ConsumeResetToken deletes the token and returns the user it belongs to,
	// or domain.ErrResetTokenInvalid when it is unknown or expired.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// AuthService implements signup, login and password maintenance. It is the
// only component that reads or writes password hashes.
type AuthService struct {
	repo       ports.AuthRepository
	tokens     ports.TokenService
	resets     ResetTokenStore
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	tokens ports.TokenService,
	resets ResetTokenStore,
	bcryptCost int,
	log zerolog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		resets:     resets,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// normalizeEmail is the single email comparison policy: lower-cased, trimmed.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user and immediately issues a token (auto-login).
// The role defaults to employee when absent.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}

	role := in.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !role.Valid() {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.Inc()

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// collapse into the same ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.Inc()
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.AuthResult{User: user, Token: token}, nil
}

// VerifiedUser resolves the subject of an already-verified token to its
// stored user record.
func (s *AuthService) VerifiedUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ChangePassword re-verifies the old password before storing a new hash. The
// old-password check fails closed even though the caller's token was already
// verified upstream.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrValidation
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// ForgotPassword always reports success to the caller. When the account
// exists, a single-use reset token is stored with a short TTL; delivering it
// to the user is out-of-band.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Msg("forgot-password lookup failed")
		}
		return nil
	}

	token := uuid.NewString()
	if err := s.resets.SaveResetToken(ctx, token, user.ID, resetTokenTTL); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to store reset token")
		return nil
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset token stored")
	return nil
}

// ResetPassword redeems a reset token. The token is consumed even when the
// new password is later rejected, so a leaked token cannot be retried.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrResetTokenInvalid
	}

	userID, err := s.resets.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}

	if newPassword == "" {
		return domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}
