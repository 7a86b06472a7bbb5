package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// ResetStore holds short-lived password-reset tokens.
// Key format: pwreset:<token> → user id. The token reaches the user through
// an out-of-band channel; expiry makes every token single-window.
type ResetStore struct {
	client *redis.Client
}

// NewResetStore creates a ResetStore wrapping the given Redis client.
func NewResetStore(client *redis.Client) *ResetStore {
	return &ResetStore{client: client}
}

// SaveResetToken stores the token → user mapping for ttl.
func (s *ResetStore) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken atomically fetches and deletes the token, returning the
// user id it was issued for. A missing or expired token is reported as
// domain.ErrResetTokenInvalid.
func (s *ResetStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrResetTokenInvalid
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (s *ResetStore) key(token string) string {
	return "pwreset:" + token
}
