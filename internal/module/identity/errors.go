package identity

import "errors"

// Identity module errors.
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrUserNotFound       = errors.New("user not found")
	ErrCacheMiss          = errors.New("cache miss")
)
