// Package tagio abstracts physical tag reading and writing. Scans are
// one-shot: each call yields exactly one payload or one failure, and a new
// scan supersedes interest in any prior one at the call site.
package tagio

import (
	"context"
	"errors"
)

// ErrScanInvalidated is returned when a scan session ends without a
// readable tag (multiple tags detected, connection lost, or cancelled).
var ErrScanInvalidated = errors.New("tag scan invalidated")

// Scanner reads a single tag payload per invocation.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// Writer writes a payload to a physical tag.
type Writer interface {
	Write(ctx context.Context, payload string) error
}
