package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	perrs "inkwell/internal/platform/errors"
	phttp "inkwell/internal/platform/net/http"
	authdomain "inkwell/internal/services/auth/domain"
	"inkwell/internal/services/api/newsletter/domain"
)

type fakeValidator struct {
	user string
	pass string
}

func (f *fakeValidator) Validate(_ context.Context, c authdomain.Credentials) (uuid.UUID, error) {
	if c.Username == f.user && c.Password == f.pass {
		return uuid.New(), nil
	}
	return uuid.Nil, perrs.Unauthorizedf("invalid credentials")
}

type fakeService struct {
	res  domain.PublishResult
	fail error
	got  *domain.PublishInput
}

func (f *fakeService) Publish(_ context.Context, in domain.PublishInput) (domain.PublishResult, error) {
	f.got = &in
	if f.fail != nil {
		return domain.PublishResult{}, f.fail
	}
	return f.res, nil
}

func newServer(t *testing.T, svc domain.ServicePort, v authdomain.ValidatorPort) *httptest.Server {
	t.Helper()
	r := phttp.AdaptChi(chi.NewMux())
	Register(r, svc, v)
	srv := httptest.NewServer(r.Mux())
	t.Cleanup(srv.Close)
	return srv
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func postIssue(t *testing.T, srv *httptest.Server, authz, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/", strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

const validIssue = `{"title":"Issue #1","content":{"html":"<p>hi</p>","text":"hi"}}`

func TestPublish_MissingAuthGetsChallenge(t *testing.T) {
	srv := newServer(t, &fakeService{}, &fakeValidator{user: "ed", pass: "pw"})

	resp := postIssue(t, srv, "", validIssue)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("WWW-Authenticate"); got != `Basic realm="publish"` {
		t.Fatalf("expected publish realm challenge, got %q", got)
	}
}

func TestPublish_BadCredentialsGetChallenge(t *testing.T) {
	svc := &fakeService{}
	srv := newServer(t, svc, &fakeValidator{user: "ed", pass: "pw"})

	resp := postIssue(t, srv, basicAuth("ed", "wrong"), validIssue)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("WWW-Authenticate"); got != `Basic realm="publish"` {
		t.Fatalf("expected publish realm challenge, got %q", got)
	}
	if svc.got != nil {
		t.Fatalf("publish must not run for rejected credentials")
	}
}

func TestPublish_HappyPath(t *testing.T) {
	svc := &fakeService{res: domain.PublishResult{Sent: 2, Skipped: 1}}
	srv := newServer(t, svc, &fakeValidator{user: "ed", pass: "pw"})

	resp := postIssue(t, srv, basicAuth("ed", "pw"), validIssue)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var env struct {
		Data domain.PublishResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Data.Sent != 2 || env.Data.Skipped != 1 {
		t.Fatalf("unexpected result payload: %+v", env.Data)
	}
	if svc.got == nil || svc.got.Title != "Issue #1" {
		t.Fatalf("service should receive the decoded issue, got %+v", svc.got)
	}
}

func TestPublish_InvalidBodyIs400(t *testing.T) {
	srv := newServer(t, &fakeService{}, &fakeValidator{user: "ed", pass: "pw"})

	cases := []string{
		`not json`,
		`{"title":"x"}`,
		`{"title":"","content":{"html":"h","text":"t"}}`,
	}
	for _, body := range cases {
		resp := postIssue(t, srv, basicAuth("ed", "pw"), body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestPublish_DeliveryFailureIs500WithoutChallenge(t *testing.T) {
	svc := &fakeService{fail: perrs.Transportf("newsletter delivery to a@b.co failed")}
	srv := newServer(t, svc, &fakeValidator{user: "ed", pass: "pw"})

	resp := postIssue(t, srv, basicAuth("ed", "pw"), validIssue)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if resp.Header.Get("WWW-Authenticate") != "" {
		t.Fatalf("delivery failures must not carry an auth challenge")
	}
}
