// Package subscriber holds the validated identity types for newsletter
// subscribers. Construction is the only door in; a Name or Email that
// exists is one that already passed its grammar
package subscriber

import (
	"strings"

	perrs "inkwell/internal/platform/errors"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// NameMaxLen is the maximum rendered length of a subscriber name,
// counted in grapheme clusters after NFC normalization
const NameMaxLen = 256

// forbidden covers characters that could escape an HTML or SQL context
// if a name ever reached one unescaped
const forbidden = `/()"<>\{}`

// Name is a validated subscriber display name
type Name struct {
	s string
}

// ParseName validates raw input into a Name
// rejects empty or whitespace-only input, names longer than NameMaxLen,
// and names containing any forbidden character
func ParseName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, perrs.WithField(perrs.Validationf("name must not be empty"), "name")
	}
	// count what the reader sees, not what the encoder sent: a letter
	// carrying combining marks is one character no matter how it composes
	if uniseg.GraphemeClusterCount(norm.NFC.String(raw)) > NameMaxLen {
		return Name{}, perrs.WithField(
			perrs.Validationf("name must be at most %d characters", NameMaxLen), "name")
	}
	if strings.ContainsAny(raw, forbidden) {
		return Name{}, perrs.WithField(perrs.Validationf("name contains a forbidden character"), "name")
	}
	return Name{s: raw}, nil
}

// String returns the validated name
func (n Name) String() string { return n.s }
