package subscriber

import (
	"sync"

	perrs "inkwell/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

var (
	emailOnce sync.Once
	emailV    *validator.Validate
)

func emailValidator() *validator.Validate {
	emailOnce.Do(func() {
		emailV = validator.New(validator.WithRequiredStructEnabled())
	})
	return emailV
}

// Email is a validated subscriber email address
type Email struct {
	s string
}

// ParseEmail validates raw input into an Email
func ParseEmail(raw string) (Email, error) {
	if err := emailValidator().Var(raw, "required,email"); err != nil {
		return Email{}, perrs.WithField(perrs.Validationf("%q is not a valid email", raw), "email")
	}
	return Email{s: raw}, nil
}

// String returns the validated address
func (e Email) String() string { return e.s }
