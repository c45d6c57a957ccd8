// Package domain defines the types and ports for the newsletter module
package domain

import (
	"context"

	"inkwell/internal/core/subscriber"
)

// Content carries both renderings of an issue body
type Content struct {
	HTML string `json:"html" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// PublishInput is the JSON payload for a publish request
type PublishInput struct {
	Title   string  `json:"title" validate:"required"`
	Content Content `json:"content" validate:"required"`
}

// PublishResult summarizes a completed fan-out
type PublishResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
}

// Repo abstracts the recipient projection
type Repo interface {
	// ConfirmedEmails returns the stored addresses of confirmed subscribers
	// rows come back raw, the service re-validates each before sending
	ConfirmedEmails(ctx context.Context) ([]string, error)
}

// Mailer is the outbound email capability the fan-out needs
type Mailer interface {
	Send(ctx context.Context, to subscriber.Email, subject, htmlBody, textBody string) error
}

// ServicePort is what the HTTP layer consumes
type ServicePort interface {
	// Publish fans the issue out to every confirmed subscriber
	// a delivery failure to a valid recipient aborts the whole publish
	Publish(ctx context.Context, in PublishInput) (PublishResult, error)
}
