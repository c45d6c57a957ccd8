// Package service implements credential validation for the auth service
package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell/internal/modkit/repokit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/services/auth/domain"
)

// dummyPHC is verified when the username is unknown so that the unknown-user
// path costs the same hash work as the wrong-password path
const dummyPHC = "$argon2id$v=19$m=15000,t=2,p=1$" +
	"gZiV/M1gPc22ElAH/Jh1Hw$CWOrkoo7oJBQ/iyh7uJ0LO2aLEfrHwTWllSAxT0zRno"

// errInvalidCredentials is the single error callers see for any
// username or password mismatch
func errInvalidCredentials() error { return perrs.Unauthorizedf("invalid credentials") }

// Config controls the service
type Config struct {
	// VerifyConcurrency caps how many argon2 verifications run at once
	VerifyConcurrency int
}

// Svc implements domain.ValidatorPort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	repo   domain.Repo

	// bounded slots for CPU heavy hash work so bursts of login attempts
	// cannot starve request scheduling
	verifySem chan struct{}
}

// Compile-time assertion: Svc implements domain.ValidatorPort
var _ domain.ValidatorPort = (*Svc)(nil)

// New constructs the auth service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config) *Svc {
	if db == nil {
		panic("auth.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non-nil Repo binder")
	}
	n := cfg.VerifyConcurrency
	if n <= 0 {
		n = 4
	}
	return &Svc{
		db:        db,
		binder:    binder,
		repo:      binder.Bind(db),
		verifySem: make(chan struct{}, n),
	}
}

// Validate checks credentials and returns the user id on success
// unknown usernames still pay for a verification against a fixed dummy hash
func (s *Svc) Validate(ctx context.Context, creds domain.Credentials) (uuid.UUID, error) {
	phc := dummyPHC
	userID := uuid.Nil
	known := true

	stored, err := s.repo.CredentialsByUsername(ctx, creds.Username)
	switch {
	case err == nil:
		phc = stored.PasswordHash
		userID = stored.UserID
	case perrs.IsCode(err, perrs.ErrorCodeNotFound):
		known = false
	default:
		return uuid.Nil, perrs.Wrap(err, perrs.ErrorCodeDB, "credential lookup failed")
	}

	ok, err := s.verify(ctx, phc, creds.Password)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok || !known {
		return uuid.Nil, errInvalidCredentials()
	}
	return userID, nil
}

// Username resolves the display username for an authenticated user id
func (s *Svc) Username(ctx context.Context, id uuid.UUID) (string, error) {
	return s.repo.UsernameByID(ctx, id)
}

// verify runs the argon2 comparison on a bounded slot
func (s *Svc) verify(ctx context.Context, phc, candidate string) (bool, error) {
	select {
	case s.verifySem <- struct{}{}:
	case <-ctx.Done():
		return false, perrs.Wrap(ctx.Err(), perrs.ErrorCodeUnavailable, "verification slot wait canceled")
	}
	defer func() { <-s.verifySem }()

	return verifyPHC(phc, candidate)
}
