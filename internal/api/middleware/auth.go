package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/api/metrics"
	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

// Context keys under which the verified identity is stored. Handlers must
// only ever read identity from these keys, never from request bodies.
const (
	CtxUserID = "auth_user_id"
	CtxRole   = "auth_role"
)

// Auth extracts the bearer token, verifies it through the token service, and
// injects the decoded identity into the request context. Every failure kind
// collapses into the same 401; the kind is logged and counted only.
func Auth(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				kind := failureKind(err)
				metrics.TokenVerifyFailuresTotal.WithLabelValues(kind).Inc()
				log.Debug().
					Str("kind", kind).
					Str("path", c.Path()).
					Msg("token verification failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid_signature"
	}
}
