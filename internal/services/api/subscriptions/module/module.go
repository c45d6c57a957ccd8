// Package module wires the subscriptions API into HTTP via modkit
package module

import (
	"net/http"

	"inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/platform/strings"
	"inkwell/internal/services/api/subscriptions/domain"

	subshttp "inkwell/internal/services/api/subscriptions/http"
	"inkwell/internal/services/api/subscriptions/repo"
	"inkwell/internal/services/api/subscriptions/service"
)

// Options carries module construction inputs beyond the shared deps
type Options struct {
	// Mailer sends confirmation emails
	Mailer domain.Mailer
	// BaseURL is the public address confirmation links point at
	BaseURL string
}

// Ports exposes the service port for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Module implements the subscriptions module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Svc
}

// New constructs the subscriptions module
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("subscriptions"),
		modkit.WithPrefix("/subscriptions"),
	}, opts...)...)

	svc := service.New(deps.PG, repo.NewPG(), o.Mailer, service.Config{BaseURL: o.BaseURL})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		subshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return strings.MustPrefix(m.prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes the module ports
func (m *Module) Ports() any { return m.ports }
