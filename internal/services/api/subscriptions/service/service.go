// Package service implements the subscribe and confirm workflows
package service

import (
	"context"
	"fmt"

	"inkwell/internal/core/subscriber"
	"inkwell/internal/core/token"
	"inkwell/internal/modkit/repokit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	"inkwell/internal/services/api/subscriptions/domain"
)

// Config controls the service
type Config struct {
	// BaseURL is the public address confirmation links point at
	BaseURL string
}

// Svc implements domain.ServicePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	repo   domain.Repo
	mailer domain.Mailer
	cfg    Config

	// seam for deterministic tokens in tests
	newToken func() (string, error)
}

// Compile-time assertion: Svc implements domain.ServicePort
var _ domain.ServicePort = (*Svc)(nil)

// New constructs the subscriptions service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], mailer domain.Mailer, cfg Config) *Svc {
	if db == nil {
		panic("subscriptions.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("subscriptions.Service requires a non-nil Repo binder")
	}
	if mailer == nil {
		panic("subscriptions.Service requires a non-nil Mailer")
	}
	return &Svc{
		db:       db,
		binder:   binder,
		repo:     binder.Bind(db),
		mailer:   mailer,
		cfg:      cfg,
		newToken: token.New,
	}
}

// Subscribe validates input, persists the pending subscriber and its token in
// one transaction, then sends the confirmation email outside the transaction
// a failed email leaves the committed row in place, the token link can be resent
func (s *Svc) Subscribe(ctx context.Context, in domain.SubscribeInput) error {
	sub, err := subscriber.New(in.Email, in.Name)
	if err != nil {
		return err
	}

	tok, err := s.newToken()
	if err != nil {
		return err
	}

	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.Insert(ctx, sub); err != nil {
			return err
		}
		return r.StoreToken(ctx, tok, sub.ID)
	})
	if err != nil {
		return perrs.Wrap(err, perrs.ErrorCodeDB, "subscribe transaction failed")
	}

	if err := s.sendConfirmation(ctx, sub.Email, tok); err != nil {
		logger.C(ctx).Error().Err(err).Str("email", sub.Email.String()).Msg("confirmation email failed")
		return perrs.Wrap(err, perrs.ErrorCodeTransport, "confirmation email failed")
	}
	return nil
}

// Confirm resolves a token and marks its subscriber confirmed
// the token stays valid afterwards so repeat confirms succeed
func (s *Svc) Confirm(ctx context.Context, tok string) error {
	if tok == "" {
		return perrs.WithField(perrs.Validationf("subscription_token is required"), "subscription_token")
	}
	if !token.Valid(tok) {
		return perrs.Unauthorizedf("unknown subscription token")
	}

	id, err := s.repo.SubscriberIDForToken(ctx, tok)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return perrs.Unauthorizedf("unknown subscription token")
		}
		return perrs.Wrap(err, perrs.ErrorCodeDB, "token lookup failed")
	}

	if err := s.repo.MarkConfirmed(ctx, id); err != nil {
		return perrs.Wrap(err, perrs.ErrorCodeDB, "confirm update failed")
	}
	return nil
}

func (s *Svc) sendConfirmation(ctx context.Context, to subscriber.Email, tok string) error {
	link := fmt.Sprintf("%s/api/v1/subscriptions/confirm?subscription_token=%s", s.cfg.BaseURL, tok)
	html := fmt.Sprintf(
		"Welcome to our newsletter!<br />Click <a href=\"%s\">here</a> to confirm your subscription.", link)
	text := fmt.Sprintf(
		"Welcome to our newsletter!\nVisit %s to confirm your subscription.", link)
	return s.mailer.Send(ctx, to, "Welcome!", html, text)
}
