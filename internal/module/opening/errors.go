package opening

import "errors"

// Opening module errors.
var (
	// ErrOpeningNotFound covers both "does not exist" and "belongs to
	// another tenant". The two must stay indistinguishable to callers.
	ErrOpeningNotFound = errors.New("opening not found or access denied")
	ErrOpeningClosed   = errors.New("this opening is closed and no longer accepting profiles")
)
