// Package repo provides Postgres bindings for the newsletter domain.Repo
package repo

import (
	"context"

	"inkwell/internal/core/subscriber"
	"inkwell/internal/modkit/repokit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/services/api/newsletter/domain"
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

// ConfirmedEmails returns the stored addresses of confirmed subscribers
func (r *queries) ConfirmedEmails(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT email
		FROM subscriptions
		WHERE status = $1
	`, string(subscriber.StatusConfirmed))
	if err != nil {
		return nil, perrs.FromPostgres(err, "confirmed emails query")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, perrs.FromPostgres(err, "confirmed emails scan")
		}
		out = append(out, email)
	}
	if err := rows.Err(); err != nil {
		return nil, perrs.FromPostgres(err, "confirmed emails rows")
	}
	return out, nil
}
