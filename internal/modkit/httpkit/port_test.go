package httpkit

import (
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	perrs "inkwell/internal/platform/errors"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestParseBasicAuth_Success(t *testing.T) {
	t.Parallel()

	req, _ := http.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", basicHeader("editor", "s3cret"))

	creds, err := ParseBasicAuth(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Username != "editor" || creds.Password != "s3cret" {
		t.Fatalf("unexpected credentials, got %q %q", creds.Username, creds.Password)
	}
}

func TestParseBasicAuth_PasswordWithColons(t *testing.T) {
	t.Parallel()

	req, _ := http.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", basicHeader("editor", "pa:ss:word"))

	creds, err := ParseBasicAuth(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Password != "pa:ss:word" {
		t.Fatalf("colons after the first must stay in the password, got %q", creds.Password)
	}
}

func TestParseBasicAuth_CaseInsensitiveScheme(t *testing.T) {
	t.Parallel()

	req, _ := http.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "BASIC "+base64.StdEncoding.EncodeToString([]byte("u:p")))

	creds, err := ParseBasicAuth(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Username != "u" || creds.Password != "p" {
		t.Fatalf("unexpected credentials, got %q %q", creds.Username, creds.Password)
	}
}

func TestParseBasicAuth_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		h    string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer abc123"},
		{"not base64", "Basic !!!not-base64!!!"},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("justuser"))},
		{"empty username", "Basic " + base64.StdEncoding.EncodeToString([]byte(":password"))},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req, _ := http.NewRequest(http.MethodPost, "/", nil)
			if tc.h != "" {
				req.Header.Set("Authorization", tc.h)
			}
			_, err := ParseBasicAuth(req)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			var pe *perrs.Error
			if !errors.As(err, &pe) || pe.Code() != perrs.ErrorCodeUnauthorized {
				t.Fatalf("expected unauthorized perrs error, got %#v", err)
			}
		})
	}
}

func TestPort_Parse_Delegates(t *testing.T) {
	t.Parallel()

	calls := 0
	p := NewPortFunc(func(r *http.Request) (string, error) {
		calls++
		return "user-1", nil
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	uid, err := p.Parse(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uid != "user-1" {
		t.Fatalf("expected user-1, got %q", uid)
	}
	if calls != 1 {
		t.Fatalf("expected parser called once, got %d", calls)
	}
}

func TestPort_Parse_ErrorsBecomeUnauthorized(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(r *http.Request) (string, error) {
		return "", errors.New("session expired")
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	uid, err := p.Parse(req)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if uid != "" {
		t.Fatalf("expected empty user id, got %q", uid)
	}
	if perrs.CodeOf(err) != perrs.ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", perrs.CodeOf(err))
	}
}

func TestPort_Parse_NilParser(t *testing.T) {
	t.Parallel()

	// zero value friendly guard when parse is nil
	var p Port

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	_, err := p.Parse(req)
	if err == nil {
		t.Fatalf("expected error when parser is nil")
	}
}
