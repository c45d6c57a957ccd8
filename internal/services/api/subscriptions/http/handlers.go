// Package http provides HTTP transport for the subscriptions module
package http

import (
	stdhttp "net/http"

	"inkwell/internal/modkit/httpkit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/services/api/subscriptions/domain"
)

// Register mounts subscription endpoints on the given router
// subscribe takes a form body to stay friendly to plain HTML forms
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.Handle(h.subscribe))
	r.Get("/confirm", httpkit.Handle(h.confirm))
}

type handlers struct{ svc domain.ServicePort }

// SubscribeResponse acknowledges a subscribe request
type SubscribeResponse struct {
	Pending bool `json:"pending" example:"true"`
}

// subscribe accepts application/x-www-form-urlencoded name and email
func (h *handlers) subscribe(r *stdhttp.Request) httpkit.Response {
	if err := r.ParseForm(); err != nil {
		return httpkit.Error(perrs.Validationf("request body is not a valid form"))
	}
	in := domain.SubscribeInput{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	}
	if err := h.svc.Subscribe(r.Context(), in); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(SubscribeResponse{Pending: true})
}

// ConfirmResponse acknowledges a confirmed subscription
type ConfirmResponse struct {
	Confirmed bool `json:"confirmed" example:"true"`
}

// confirm flips a pending subscription via its emailed token
func (h *handlers) confirm(r *stdhttp.Request) httpkit.Response {
	if !r.URL.Query().Has("subscription_token") {
		return httpkit.Error(perrs.WithField(
			perrs.Validationf("subscription_token is required"), "subscription_token"))
	}
	tok := r.URL.Query().Get("subscription_token")
	if err := h.svc.Confirm(r.Context(), tok); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(ConfirmResponse{Confirmed: true})
}
