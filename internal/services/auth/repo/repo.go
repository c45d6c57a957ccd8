// Package repo provides Postgres bindings for the auth domain.Repo
package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/modkit/repokit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/services/auth/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

func isNoRows(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no rows")
}

// CredentialsByUsername returns the stored credential row for username
func (r *queries) CredentialsByUsername(ctx context.Context, username string) (domain.StoredCredentials, error) {
	var out domain.StoredCredentials
	err := r.q.QueryRow(ctx, `
		SELECT user_id, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&out.UserID, &out.PasswordHash)
	if isNoRows(err) {
		return domain.StoredCredentials{}, perrs.NotFoundf("unknown username")
	}
	if err != nil {
		return domain.StoredCredentials{}, perrs.FromPostgres(err, "credentials lookup")
	}
	return out, nil
}

// UsernameByID returns the username for a known user id
func (r *queries) UsernameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var username string
	err := r.q.QueryRow(ctx, `
		SELECT username
		FROM users
		WHERE user_id = $1
	`, id).Scan(&username)
	if isNoRows(err) {
		return "", perrs.NotFoundf("unknown user id")
	}
	if err != nil {
		return "", perrs.FromPostgres(err, "username lookup")
	}
	return username, nil
}
