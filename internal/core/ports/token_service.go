package ports

import (
	"time"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// TokenClaims is the verified identity decoded from a bearer token. A value
// of this type only ever originates from TokenService.Verify, so downstream
// code can treat its Role as server-verified rather than client-supplied.
type TokenClaims struct {
	UserID    string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies self-contained signed tokens.
type TokenService interface {
	// Issue produces a signed token embedding the user's id and role with a
	// fixed expiry window.
	Issue(user *domain.User) (string, error)
	// Verify checks signature integrity and expiry. On failure it returns one
	// of domain.ErrTokenMalformed, domain.ErrTokenSignatureInvalid or
	// domain.ErrTokenExpired.
	Verify(token string) (TokenClaims, error)
}
