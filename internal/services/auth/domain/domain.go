// Package domain defines the credential types and ports for the auth service
package domain

import (
	"context"

	"github.com/google/uuid"
)

// Credentials is a raw username and password pair as presented by a caller
// the password is never logged and never stored
type Credentials struct {
	Username string
	Password string
}

// StoredCredentials is the persisted credential row for a user
type StoredCredentials struct {
	UserID       uuid.UUID
	PasswordHash string // PHC string, argon2id
}

// Repo abstracts credential row lookups
type Repo interface {
	// CredentialsByUsername returns the stored row for username
	// a missing user comes back as a not found error
	CredentialsByUsername(ctx context.Context, username string) (StoredCredentials, error)
	// UsernameByID returns the username for a known user id
	UsernameByID(ctx context.Context, id uuid.UUID) (string, error)
}

// ValidatorPort is the capability other modules consume
type ValidatorPort interface {
	// Validate checks credentials and returns the user id on success
	// wrong password and unknown username are indistinguishable to the caller
	Validate(ctx context.Context, creds Credentials) (uuid.UUID, error)
}
