package attendance

import "errors"

var (
	// ErrNotEligible indicates the space has a roster and the student is
	// not on it.
	ErrNotEligible = errors.New("user not assigned to this space")
	// ErrNoTaskCategory indicates no task category was selected before the
	// scan.
	ErrNoTaskCategory = errors.New("no task category selected")
	// ErrSessionActive indicates an open interval already exists for this
	// user/space pair.
	ErrSessionActive = errors.New("session already active for this space")
	// ErrNotAuthorized indicates the restriction gateway has not been
	// granted authorization, so enforcement cannot be enabled.
	ErrNotAuthorized = errors.New("restriction gateway not authorized")
	// ErrInvalidInput indicates missing or malformed session input.
	ErrInvalidInput = errors.New("invalid session input")
)
