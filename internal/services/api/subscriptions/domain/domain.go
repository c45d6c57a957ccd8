// Package domain defines the types and ports for the subscriptions module
package domain

import (
	"context"

	"github.com/google/uuid"

	"inkwell/internal/core/subscriber"
)

// SubscribeInput is the raw form payload for a subscribe request
type SubscribeInput struct {
	Name  string
	Email string
}

// Repo abstracts subscription storage
// Insert and StoreToken run inside the subscribe transaction
type Repo interface {
	// Insert writes a pending subscriber row
	Insert(ctx context.Context, sub subscriber.Subscriber) error
	// StoreToken writes the confirmation token for a subscriber
	StoreToken(ctx context.Context, token string, subscriberID uuid.UUID) error
	// SubscriberIDForToken resolves a confirmation token
	// an unknown token comes back as a not found error
	SubscriberIDForToken(ctx context.Context, token string) (uuid.UUID, error)
	// MarkConfirmed flips the subscriber status to confirmed
	// confirming an already confirmed subscriber is a no-op success
	MarkConfirmed(ctx context.Context, id uuid.UUID) error
	// StatusByEmail reads back the lifecycle status for an address
	StatusByEmail(ctx context.Context, email string) (subscriber.Status, error)
}

// Mailer is the outbound email capability the workflow needs
// satisfied by the mail adapter client
type Mailer interface {
	Send(ctx context.Context, to subscriber.Email, subject, htmlBody, textBody string) error
}

// ServicePort is what the HTTP layer consumes
type ServicePort interface {
	// Subscribe runs the full workflow: validate, persist, email
	Subscribe(ctx context.Context, in SubscribeInput) error
	// Confirm resolves a token and marks the subscriber confirmed
	Confirm(ctx context.Context, token string) error
}
