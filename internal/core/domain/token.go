package domain

import "errors"

// Token verification failures. The HTTP layer collapses all three into a
// uniform 401; the distinction exists for logging and metrics only.
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// ErrResetTokenInvalid covers missing, consumed and expired password-reset
// tokens alike.
var ErrResetTokenInvalid = errors.New("reset token invalid")
