package space

import "errors"

var (
	// ErrSpaceNotFound indicates the space doesn't exist.
	ErrSpaceNotFound = errors.New("space not found")
	// ErrTagNotFound indicates no space carries the scanned tag. Distinct
	// from eligibility failures, which belong to the session engine.
	ErrTagNotFound = errors.New("tag not assigned to any space")
	// ErrInvalidInput indicates invalid space input.
	ErrInvalidInput = errors.New("invalid space input")
)
