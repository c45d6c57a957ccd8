// Package domain defines the session and credential ports for the admin module
package domain

import (
	"context"

	"github.com/google/uuid"

	authdomain "inkwell/internal/services/auth/domain"
)

// SessionStore is an explicit injected capability, not ambient state
// implementations decide storage and expiry, callers only see opaque ids
type SessionStore interface {
	// Put associates a session id with a user id
	Put(ctx context.Context, sid string, userID uuid.UUID) error
	// Get resolves a session id, ok is false for missing or expired sessions
	Get(ctx context.Context, sid string) (uuid.UUID, bool)
	// Delete forgets a session id
	Delete(ctx context.Context, sid string)
}

// CredentialPort is the slice of the auth service the admin surface needs
type CredentialPort interface {
	Validate(ctx context.Context, creds authdomain.Credentials) (uuid.UUID, error)
	Username(ctx context.Context, id uuid.UUID) (string, error)
}
