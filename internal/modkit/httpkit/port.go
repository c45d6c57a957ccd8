// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"encoding/base64"
	"net/http"
	"strings"

	perrs "inkwell/internal/platform/errors"
)

// BasicCredentials carries a username and password decoded from an
// Authorization header. The password stays raw; validation happens elsewhere
type BasicCredentials struct {
	Username string
	Password string
}

// ParseBasicAuth decodes credentials from an Authorization Basic header
// returns unauthorized when the header is missing, malformed, or not UTF-8 base64
func ParseBasicAuth(r *http.Request) (BasicCredentials, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return BasicCredentials{}, perrs.Unauthorizedf("missing basic credentials")
	}
	const prefix = "basic "
	if len(authz) < len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return BasicCredentials{}, perrs.Unauthorizedf("authorization scheme is not Basic")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(authz[len(prefix):]))
	if err != nil {
		return BasicCredentials{}, perrs.Unauthorizedf("credentials are not valid base64")
	}
	// split on the first colon only, passwords may contain colons
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return BasicCredentials{}, perrs.Unauthorizedf("credentials must be colon separated")
	}
	if user == "" {
		return BasicCredentials{}, perrs.Unauthorizedf("username must not be empty")
	}
	return BasicCredentials{Username: user, Password: pass}, nil
}

// ParseFunc authenticates a request and returns the user id
type ParseFunc func(r *http.Request) (userID string, err error)

// Port implements middleware.AuthPort by delegating to a ParseFunc
// sessions and credential checks live in the auth services, this is only the seam
type Port struct {
	parse ParseFunc
}

// NewPortFunc builds a Port from a request parser function
func NewPortFunc(fn ParseFunc) *Port {
	return &Port{parse: fn}
}

// Parse authenticates the request through the wrapped function
func (p *Port) Parse(r *http.Request) (string, error) {
	if p.parse == nil {
		return "", perrs.Unauthorizedf("not authenticated")
	}
	uid, err := p.parse(r)
	if err != nil {
		return "", perrs.WrapIf(err, perrs.ErrorCodeUnauthorized, "not authenticated")
	}
	return uid, nil
}
