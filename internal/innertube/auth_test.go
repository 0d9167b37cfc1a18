package innertube

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/ytmbar/ytmbar/internal/shared"
)

func TestAuthToken(t *testing.T) {
	origin := "https://music.youtube.com"

	t.Run("derives token from SAPISID", func(t *testing.T) {
		cookies := shared.Cookies{{Name: "SAPISID", Value: "secret"}}

		token, err := AuthToken(cookies, origin, 1700000000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := fmt.Sprintf("1700000000_%x", sha1.Sum([]byte("1700000000 secret "+origin)))
		if token != want {
			t.Errorf("token = %s, want %s", token, want)
		}
	})

	t.Run("accepts __Secure-3PAPISID", func(t *testing.T) {
		cookies := shared.Cookies{{Name: "__Secure-3PAPISID", Value: "secret"}}

		if _, err := AuthToken(cookies, origin, 1700000000); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("prefers SAPISID when both present", func(t *testing.T) {
		both := shared.Cookies{
			{Name: "SAPISID", Value: "first"},
			{Name: "__Secure-3PAPISID", Value: "second"},
		}
		only := shared.Cookies{{Name: "SAPISID", Value: "first"}}

		a, _ := AuthToken(both, origin, 42)
		b, _ := AuthToken(only, origin, 42)
		if a != b {
			t.Errorf("expected SAPISID to win, got %s vs %s", a, b)
		}
	})

	t.Run("token shape", func(t *testing.T) {
		cookies := shared.Cookies{{Name: "SAPISID", Value: "secret"}}

		token, err := AuthToken(cookies, origin, 1700000000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !regexp.MustCompile(`^\d+_[0-9a-f]+$`).MatchString(token) {
			t.Errorf("token %q does not match expected shape", token)
		}
	})

	t.Run("fails without a session cookie", func(t *testing.T) {
		tt := []shared.Cookies{
			nil,
			{},
			{{Name: "VISITOR_INFO1_LIVE", Value: "x"}},
			{{Name: "SAPISID", Value: ""}},
		}

		for _, cookies := range tt {
			_, err := AuthToken(cookies, origin, 1700000000)
			if !errors.Is(err, shared.ErrAuthRequired) {
				t.Errorf("cookies %v: expected ErrAuthRequired, got %v", cookies, err)
			}
		}
	})
}
