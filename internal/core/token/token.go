// Package token generates and validates subscription confirmation tokens
package token

import (
	"crypto/rand"

	perrs "inkwell/internal/platform/errors"
)

// Len is the fixed token length in characters
const Len = 25

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// New draws a uniformly random alphanumeric token
// rejection sampling keeps the distribution uniform over the 62 symbol alphabet
func New() (string, error) {
	out := make([]byte, 0, Len)
	buf := make([]byte, 32)
	for len(out) < Len {
		if _, err := rand.Read(buf); err != nil {
			return "", perrs.Wrap(err, perrs.ErrorCodeUnknown, "token entropy read failed")
		}
		for _, b := range buf {
			// 248 is the largest multiple of 62 below 256
			if b >= 248 {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Len {
				break
			}
		}
	}
	return string(out), nil
}

// Valid reports whether s looks like a token this package issued
func Valid(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
