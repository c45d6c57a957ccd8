// Package api provides the HTTP API for the application
package api

import (
	"time"

	"inkwell/internal/platform/config"
	"inkwell/internal/platform/logger"
	phttp "inkwell/internal/platform/net/http"
	"inkwell/internal/platform/store"

	"inkwell/internal/adapters/mail"
	"inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/modkit/module"
	"inkwell/internal/modkit/swaggerkit"

	authrepo "inkwell/internal/services/auth/repo"
	authsvc "inkwell/internal/services/auth/service"

	adminmod "inkwell/internal/services/api/admin/module"
	"inkwell/internal/services/api/admin/session"
	metamod "inkwell/internal/services/api/meta/module"
	newsmod "inkwell/internal/services/api/newsletter/module"
	subsmod "inkwell/internal/services/api/subscriptions/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Mail           config.Conf
	Auth           config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// outbound email client shared by subscriptions and newsletter
	mailer, err := mail.NewClient(mail.Options{
		BaseURL: opt.Mail.MustString("BASE_URL"),
		APIKey:  opt.Mail.MustString("API_KEY"),
		Sender:  opt.Mail.MustString("SENDER"),
		Timeout: opt.Mail.MayDuration("TIMEOUT", 10*time.Second),
	})
	if err != nil {
		opt.Logger.Panic().Err(err).Msg("mail client construction failed")
	}

	// credential validation shared by newsletter (Basic) and admin (sessions)
	validator := authsvc.New(deps.PG, authrepo.NewPG(), authsvc.Config{
		VerifyConcurrency: opt.Auth.MayInt("VERIFY_CONCURRENCY", 4),
	})

	subscriptions := subsmod.New(deps, subsmod.Options{
		Mailer:  mailer,
		BaseURL: opt.Config.MustString("BASE_URL"),
	})
	newsletter := newsmod.New(deps, newsmod.Options{
		Mailer:    mailer,
		Validator: validator,
	})

	mods := []module.Module{
		metamod.New(deps),
		subscriptions,
		newsletter,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	// HTML admin surface lives at the root, outside the JSON envelope
	admin := adminmod.New(deps, adminmod.Options{
		Credentials: validator,
		Sessions:    session.NewMemory(opt.Auth.MayDuration("SESSION_TTL", session.DefaultTTL)),
	})
	admin.MountRoutes(r)
}
