// Package http provides HTTP transport for the newsletter module
package http

import (
	stdhttp "net/http"

	"inkwell/internal/modkit/httpkit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/platform/net/http/bind"
	authdomain "inkwell/internal/services/auth/domain"
	"inkwell/internal/services/api/newsletter/domain"
)

// realm identifies the credential space in the 401 challenge
const realm = `Basic realm="publish"`

// Register mounts the publish endpoint on the given router
func Register(r httpkit.Router, s domain.ServicePort, v authdomain.ValidatorPort) {
	h := &handlers{svc: s, auth: v}

	r.Post("/", httpkit.Handle(h.publish))
}

type handlers struct {
	svc  domain.ServicePort
	auth authdomain.ValidatorPort
}

// challenge wraps an auth failure with the WWW-Authenticate header
func challenge(err error) httpkit.Response {
	hdr := stdhttp.Header{}
	hdr.Set("WWW-Authenticate", realm)
	return httpkit.Response{Body: err, Header: hdr}
}

// publish authenticates via Basic credentials then fans out the issue
func (h *handlers) publish(r *stdhttp.Request) httpkit.Response {
	creds, err := httpkit.ParseBasicAuth(r)
	if err != nil {
		return challenge(err)
	}
	if _, err := h.auth.Validate(r.Context(), authdomain.Credentials{
		Username: creds.Username,
		Password: creds.Password,
	}); err != nil {
		if perrs.CodeOf(err) == perrs.ErrorCodeUnauthorized {
			return challenge(err)
		}
		return httpkit.Error(err)
	}

	in, err := bind.ParseJSON[domain.PublishInput](r)
	if err != nil {
		return httpkit.Error(err)
	}

	res, err := h.svc.Publish(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(res)
}
