// Package http provides the HTML admin surface: login and dashboard
package http

import (
	"fmt"
	"html"
	stdhttp "net/http"

	"github.com/google/uuid"

	"inkwell/internal/core/token"
	"inkwell/internal/modkit/httpkit"
	perrs "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	"inkwell/internal/services/api/admin/domain"
	authdomain "inkwell/internal/services/auth/domain"
)

const (
	sessionCookie = "sid"
	flashCookie   = "_flash"
)

// Register mounts the admin routes on the given router
func Register(r httpkit.Router, creds domain.CredentialPort, sessions domain.SessionStore) {
	h := &handlers{creds: creds, sessions: sessions}

	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/admin/dashboard", h.dashboard)
	r.Post("/admin/logout", h.logout)
}

type handlers struct {
	creds    domain.CredentialPort
	sessions domain.SessionStore
}

// loginForm renders the login page with any one-time notice
func (h *handlers) loginForm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	notice := ""
	if c, err := r.Cookie(flashCookie); err == nil && c.Value != "" {
		notice = fmt.Sprintf("<p><i>%s</i></p>", html.EscapeString(c.Value))
		clearCookie(w, flashCookie)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Login</title></head>
<body>
%s<form action="/login" method="post">
<label>Username <input type="text" name="username" placeholder="Enter Username"></label>
<label>Password <input type="password" name="password" placeholder="Enter Password"></label>
<button type="submit">Login</button>
</form>
</body>
</html>`, notice)
}

// login validates credentials and starts a session
// failure redirects back to the form with a notice, never a status-coded oracle
func (h *handlers) login(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, "Something went wrong")
		return
	}
	uid, err := h.creds.Validate(r.Context(), authdomain.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		if perrs.CodeOf(err) != perrs.ErrorCodeUnauthorized {
			logger.C(r.Context()).Error().Err(err).Msg("login credential check failed")
			flashAndRedirect(w, r, "Something went wrong")
			return
		}
		flashAndRedirect(w, r, "Authentication failed")
		return
	}

	sid, err := token.New()
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("session id mint failed")
		flashAndRedirect(w, r, "Something went wrong")
		return
	}
	if err := h.sessions.Put(r.Context(), sid, uid); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("session store put failed")
		flashAndRedirect(w, r, "Something went wrong")
		return
	}

	stdhttp.SetCookie(w, &stdhttp.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
	})
	stdhttp.Redirect(w, r, "/admin/dashboard", stdhttp.StatusSeeOther)
}

// dashboard greets the logged-in user, anonymous visitors bounce to the form
func (h *handlers) dashboard(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	uid, ok := h.sessionUser(r)
	if !ok {
		stdhttp.Redirect(w, r, "/login", stdhttp.StatusSeeOther)
		return
	}
	// fresh read so a renamed or deleted user is reflected immediately
	username, err := h.creds.Username(r.Context(), uid)
	if err != nil {
		stdhttp.Redirect(w, r, "/login", stdhttp.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Admin dashboard</title></head>
<body>
<p>Welcome %s!</p>
<form name="logout" action="/admin/logout" method="post">
<button type="submit">Logout</button>
</form>
</body>
</html>`, html.EscapeString(username))
}

// logout drops the session and bounces to the form
func (h *handlers) logout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		h.sessions.Delete(r.Context(), c.Value)
	}
	clearCookie(w, sessionCookie)
	flashAndRedirect(w, r, "You have successfully logged out.")
}

func (h *handlers) sessionUser(r *stdhttp.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return uuid.Nil, false
	}
	return h.sessions.Get(r.Context(), c.Value)
}

func flashAndRedirect(w stdhttp.ResponseWriter, r *stdhttp.Request, notice string) {
	stdhttp.SetCookie(w, &stdhttp.Cookie{
		Name:     flashCookie,
		Value:    notice,
		Path:     "/",
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
	})
	stdhttp.Redirect(w, r, "/login", stdhttp.StatusSeeOther)
}

func clearCookie(w stdhttp.ResponseWriter, name string) {
	stdhttp.SetCookie(w, &stdhttp.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
	})
}
