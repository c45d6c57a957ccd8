// Package module wires the admin HTML surface into HTTP via modkit
package module

import (
	"net/http"

	"inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/platform/strings"
	"inkwell/internal/services/api/admin/domain"

	adminhttp "inkwell/internal/services/api/admin/http"
)

// Options carries module construction inputs beyond the shared deps
type Options struct {
	// Credentials validates logins and resolves usernames
	Credentials domain.CredentialPort
	// Sessions is the injected session capability
	Sessions domain.SessionStore
}

// Module implements the admin module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the admin module
// the prefix defaults to the router root because login lives at /login
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("admin"),
		modkit.WithPrefix("/"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		adminhttp.Register(r, o.Credentials, o.Sessions)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "/" || m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes the module ports
func (m *Module) Ports() any { return nil }
