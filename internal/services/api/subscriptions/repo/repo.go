// Package repo provides Postgres bindings for the subscriptions domain.Repo
package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/core/subscriber"
	"inkwell/internal/modkit/repokit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/services/api/subscriptions/domain"
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

// Insert writes a pending subscriber row
func (r *queries) Insert(ctx context.Context, sub subscriber.Subscriber) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Email.String(), sub.Name.String(), sub.SubscribedAt, string(sub.Status))
	if err != nil {
		return perrs.FromPostgres(err, "insert subscriber")
	}
	return nil
}

// StoreToken writes the confirmation token for a subscriber
func (r *queries) StoreToken(ctx context.Context, token string, subscriberID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`, token, subscriberID)
	if err != nil {
		return perrs.FromPostgres(err, "store subscription token")
	}
	return nil
}

// SubscriberIDForToken resolves a confirmation token
func (r *queries) SubscriberIDForToken(ctx context.Context, token string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.q.QueryRow(ctx, `
		SELECT subscriber_id
		FROM subscription_tokens
		WHERE subscription_token = $1
	`, token).Scan(&id)
	if isNoRows(err) {
		return uuid.Nil, perrs.NotFoundf("unknown subscription token")
	}
	if err != nil {
		return uuid.Nil, perrs.FromPostgres(err, "token lookup")
	}
	return id, nil
}

// MarkConfirmed flips the subscriber status to confirmed
func (r *queries) MarkConfirmed(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		UPDATE subscriptions
		SET status = $1
		WHERE id = $2
	`, string(subscriber.StatusConfirmed), id)
	if err != nil {
		return perrs.FromPostgres(err, "mark confirmed")
	}
	return nil
}

// StatusByEmail reads back the lifecycle status for an address
func (r *queries) StatusByEmail(ctx context.Context, email string) (subscriber.Status, error) {
	var status string
	err := r.q.QueryRow(ctx, `
		SELECT status
		FROM subscriptions
		WHERE email = $1
	`, email).Scan(&status)
	if isNoRows(err) {
		return "", perrs.NotFoundf("unknown subscriber email")
	}
	if err != nil {
		return "", perrs.FromPostgres(err, "status lookup")
	}
	return subscriber.Status(status), nil
}
