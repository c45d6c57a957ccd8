package subscriber

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a subscription row
type Status string

// lifecycle states
const (
	StatusPending   Status = "pending_confirmation"
	StatusConfirmed Status = "confirmed"
)

// Subscriber is a validated pending or confirmed newsletter subscriber
type Subscriber struct {
	ID           uuid.UUID
	Email        Email
	Name         Name
	Status       Status
	SubscribedAt time.Time
}

// New parses the raw form fields and mints a pending subscriber
func New(email, name string) (Subscriber, error) {
	e, err := ParseEmail(email)
	if err != nil {
		return Subscriber{}, err
	}
	n, err := ParseName(name)
	if err != nil {
		return Subscriber{}, err
	}
	return Subscriber{
		ID:           uuid.New(),
		Email:        e,
		Name:         n,
		Status:       StatusPending,
		SubscribedAt: time.Now().UTC(),
	}, nil
}
