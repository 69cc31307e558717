package identity

import "errors"

var (
	// ErrBadCredentials indicates no credential table matched the pair.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrInvalidInput indicates a missing username or password.
	ErrInvalidInput = errors.New("invalid login input")
)
