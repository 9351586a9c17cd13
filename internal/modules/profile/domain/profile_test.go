package domain_test

import (
	"errors"
	"testing"

	"folio/internal/modules/profile/domain"
	apperrors "folio/internal/platform/errors"
)

func TestInitials(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Karsay Attila":      "KA",
		"ada":                "A",
		"  grace  b  hopper": "GB",
		"":                   "",
		"Ödön Lechner":       "ÖL",
	}
	for name, want := range cases {
		if got := (domain.Profile{Name: name}).Initials(); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestValidateRejectsDuplicateProjects(t *testing.T) {
	t.Parallel()
	c := domain.Content{
		Profile:  domain.Profile{Name: "Someone"},
		Projects: []domain.ProjectEntry{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}},
	}
	if err := c.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := (domain.Content{}).Validate(); err == nil {
		t.Fatalf("missing name must fail validation")
	}
}

func TestNormalizeLowercasesKeys(t *testing.T) {
	t.Parallel()
	c := domain.Content{GitHub: domain.GitHubSettings{
		Blacklist: []string{" CS-Metro ", ""},
		Overrides: map[string]domain.Override{"NetworkJS": {Name: "NetworkJS"}},
	}}.Normalize()
	if len(c.GitHub.Blacklist) != 1 || c.GitHub.Blacklist[0] != "cs-metro" {
		t.Fatalf("unexpected blacklist: %v", c.GitHub.Blacklist)
	}
	if _, ok := c.GitHub.Overrides["networkjs"]; !ok {
		t.Fatalf("override keys must be lowercase: %v", c.GitHub.Overrides)
	}
}

func TestDisplayHandle(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"SSnowly":  "@SSnowly",
		"@SSnowly": "@SSnowly",
		" @grace ": "@grace",
		"":         "",
		"@":        "",
	}
	for handle, want := range cases {
		if got := (domain.Profile{Handle: handle}).DisplayHandle(); got != want {
			t.Fatalf("DisplayHandle(%q) = %q, want %q", handle, got, want)
		}
	}
}
