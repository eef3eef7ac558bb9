package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Profile module errors.
var (
	ErrProfileNotFound = errors.New("profile not found")

	// Token errors
	ErrInvalidUploadToken = errors.New("invalid upload token")
	ErrTokenScopeMismatch = errors.New("token is not valid for this opening")

	// Batch shape errors
	ErrNoUploadItems = errors.New("either files[] with uploadTokens[], or uploads[] array is required")
)

// ValidationError reports a batch-level validation failure naming every
// offending item.
type ValidationError struct {
	Message      string
	InvalidFiles []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.InvalidFiles) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.InvalidFiles, ", "))
}

// NewCountMismatchError reports a files/tokens pairing mismatch.
func NewCountMismatchError(files, tokens int) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf("Mismatch: %d files provided but %d upload tokens", files, tokens),
	}
}
