package identity

import "context"

// CredentialRepository provides access to the fixed credential tables.
type CredentialRepository interface {
	Lookup(ctx context.Context, role Role, username string) (*Credential, error)
	Seed(ctx context.Context, creds []Credential) error
}
