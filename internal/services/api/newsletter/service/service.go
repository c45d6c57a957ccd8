// Package service implements the newsletter publish fan-out
package service

import (
	"context"

	"inkwell/internal/core/subscriber"
	"inkwell/internal/modkit/repokit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	"inkwell/internal/services/api/newsletter/domain"
)

// Svc implements domain.ServicePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	repo   domain.Repo
	mailer domain.Mailer
}

// Compile-time assertion: Svc implements domain.ServicePort
var _ domain.ServicePort = (*Svc)(nil)

// New constructs the newsletter service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], mailer domain.Mailer) *Svc {
	if db == nil {
		panic("newsletter.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("newsletter.Service requires a non-nil Repo binder")
	}
	if mailer == nil {
		panic("newsletter.Service requires a non-nil Mailer")
	}
	return &Svc{db: db, binder: binder, repo: binder.Bind(db), mailer: mailer}
}

// Publish fans the issue out to every confirmed subscriber
// a stored address that no longer parses is skipped with a warning, a
// delivery failure to a valid recipient aborts the whole publish
func (s *Svc) Publish(ctx context.Context, in domain.PublishInput) (domain.PublishResult, error) {
	emails, err := s.repo.ConfirmedEmails(ctx)
	if err != nil {
		return domain.PublishResult{}, perrs.Wrap(err, perrs.ErrorCodeDB, "recipient query failed")
	}

	var out domain.PublishResult
	for _, raw := range emails {
		to, err := subscriber.ParseEmail(raw)
		if err != nil {
			// validation rules changed since this row was written
			logger.C(ctx).Warn().Str("email", raw).Msg("skipping confirmed subscriber with invalid stored email")
			out.Skipped++
			continue
		}
		if err := s.mailer.Send(ctx, to, in.Title, in.Content.HTML, in.Content.Text); err != nil {
			return domain.PublishResult{}, perrs.Wrapf(err,
				perrs.ErrorCodeTransport, "newsletter delivery to %s failed", to.String())
		}
		out.Sent++
	}
	return out, nil
}
