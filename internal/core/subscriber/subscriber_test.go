package subscriber

import (
	"strings"
	"testing"

	perrs "inkwell/internal/platform/errors"
)

func TestParseName_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"plain ascii", "Ursula K. Le Guin", true},
		{"unicode", "Марія Приймаченко", true},
		{"exactly max runes", strings.Repeat("a", NameMaxLen), true},
		{"max runes multibyte", strings.Repeat("ё", NameMaxLen), true},
		{"one over max", strings.Repeat("a", NameMaxLen+1), false},
		{"empty", "", false},
		{"whitespace only", " \t \n ", false},
		{"forward slash", "a/b", false},
		{"parens", "name()", false},
		{"double quote", `say "hi"`, false},
		{"angle brackets", "<script>", false},
		{"backslash", `a\b`, false},
		{"braces", "{name}", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseName(tc.in)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected valid, got error: %v", err)
				}
				if got.String() != tc.in {
					t.Fatalf("Name should preserve input, got %q", got.String())
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error for %q, got none", tc.in)
			}
			if perrs.CodeOf(err) != perrs.ErrorCodeValidation {
				t.Fatalf("expected validation code, got %v", perrs.CodeOf(err))
			}
		})
	}
}

func TestParseName_CombiningMarksCountOnce(t *testing.T) {
	t.Parallel()

	// e + combining acute folds to one rune under NFC so 256 of them fit
	in := strings.Repeat("é", NameMaxLen)
	if _, err := ParseName(in); err != nil {
		t.Fatalf("NFC-composed length should be within limit: %v", err)
	}

	// a + dot below + diaeresis never composes to a single rune, but it is
	// still one rendered character; 256 clusters must stay within the limit
	stacked := strings.Repeat("ạ̈", NameMaxLen)
	if _, err := ParseName(stacked); err != nil {
		t.Fatalf("multi-mark clusters should count once each: %v", err)
	}
	if _, err := ParseName(stacked + "x"); err == nil {
		t.Fatalf("257 clusters should exceed the limit")
	}
}

func TestParseEmail_Table(t *testing.T) {
	t.Parallel()

	valid := []string{
		"reader@example.com",
		"first.last@sub.domain.io",
		"user+tag@example.org",
	}
	invalid := []string{
		"",
		"   ",
		"not-an-email",
		"@example.com",
		"user@",
		"user example.com",
	}

	for _, in := range valid {
		got, err := ParseEmail(in)
		if err != nil {
			t.Fatalf("expected %q valid, got %v", in, err)
		}
		if got.String() != in {
			t.Fatalf("Email should preserve input, got %q", got.String())
		}
	}
	for _, in := range invalid {
		if _, err := ParseEmail(in); err == nil {
			t.Fatalf("expected %q rejected", in)
		}
	}
}

func TestNew_MintsPending(t *testing.T) {
	t.Parallel()

	s, err := New("reader@example.com", "Reader One")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != StatusPending {
		t.Fatalf("new subscribers start pending, got %q", s.Status)
	}
	if s.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected a minted uuid")
	}
	if s.SubscribedAt.IsZero() {
		t.Fatalf("expected a subscribe timestamp")
	}
}

func TestNew_PropagatesFieldErrors(t *testing.T) {
	t.Parallel()

	if _, err := New("bad-email", "Reader"); err == nil {
		t.Fatalf("expected email rejection")
	}
	_, err := New("reader@example.com", "")
	if err == nil {
		t.Fatalf("expected name rejection")
	}
	var pe *perrs.Error
	if !perrsAs(err, &pe) || pe.Field() != "name" {
		t.Fatalf("expected field name on error, got %#v", err)
	}
}

// tiny local alias to keep errors.As noise out of the table above
func perrsAs(err error, target **perrs.Error) bool {
	pe, ok := perrs.As(err)
	if ok {
		*target = pe
	}
	return ok
}
