package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "folio/internal/platform/errors"
)

type Links struct {
	GitHub string `yaml:"github"`
	Email  string `yaml:"email,omitempty"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Handle   string `yaml:"handle"`
	Title    string `yaml:"title"`
	Location string `yaml:"location"`
	ShortBio string `yaml:"short_bio"`
	// Tagline is the one-liner shown on the Playful intro.
	Tagline string `yaml:"tagline,omitempty"`
	Links   Links  `yaml:"links"`
}

// Initials takes the first letter of the first two name parts.
func (p Profile) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(p.Name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// DisplayHandle returns the handle with exactly one leading @, or "" when
// no handle is set.
func (p Profile) DisplayHandle() string {
	h := strings.TrimPrefix(strings.TrimSpace(p.Handle), "@")
	if h == "" {
		return ""
	}
	return "@" + h
}

type WorkEntry struct {
	ID       string `yaml:"id"`
	Company  string `yaml:"company"`
	Role     string `yaml:"role"`
	Period   string `yaml:"period"`
	Location string `yaml:"location,omitempty"`
	Summary  string `yaml:"summary,omitempty"`
}

type EducationEntry struct {
	ID       string `yaml:"id"`
	School   string `yaml:"school"`
	Degree   string `yaml:"degree"`
	Period   string `yaml:"period"`
	Location string `yaml:"location,omitempty"`
	Summary  string `yaml:"summary,omitempty"`
}

type TechItem struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// ProjectEntry is a hand-curated project listed in the content file.
type ProjectEntry struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	DescriptionSerious string   `yaml:"description_serious"`
	DescriptionPlayful string   `yaml:"description_playful"`
	Tech               []string `yaml:"tech"`
	GitHubURL          string   `yaml:"github_url,omitempty"`
	LiveURL            string   `yaml:"live_url,omitempty"`
	Pinned             bool     `yaml:"pinned"`
}

// Override replaces fields of a fetched repository, keyed by lowercase repo
// slug. Empty fields leave the fetched value alone.
type Override struct {
	Name               string   `yaml:"name,omitempty"`
	DescriptionSerious string   `yaml:"description_serious,omitempty"`
	DescriptionPlayful string   `yaml:"description_playful,omitempty"`
	Tech               []string `yaml:"tech,omitempty"`
	LiveURL            string   `yaml:"live_url,omitempty"`
	Pinned             *bool    `yaml:"pinned,omitempty"`
}

type GitHubSettings struct {
	Blacklist []string            `yaml:"blacklist"`
	Overrides map[string]Override `yaml:"overrides"`
}

type Content struct {
	Profile   Profile          `yaml:"profile"`
	Work      []WorkEntry      `yaml:"work"`
	Education []EducationEntry `yaml:"education"`
	TechStack []TechItem       `yaml:"tech_stack"`
	Projects  []ProjectEntry   `yaml:"projects"`
	GitHub    GitHubSettings   `yaml:"github"`
}

func (c Content) Validate() error {
	if strings.TrimSpace(c.Profile.Name) == "" {
		return fmt.Errorf("profile name is required: %w", apperrors.ErrInvalidInput)
	}
	seen := map[string]bool{}
	for _, p := range c.Projects {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("project needs id and name: %w", apperrors.ErrInvalidInput)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate project id %q: %w", p.ID, apperrors.ErrInvalidInput)
		}
		seen[p.ID] = true
	}
	return nil
}

// Normalize lowercases the blacklist and override keys so lookups by repo
// slug are case-insensitive.
func (c Content) Normalize() Content {
	blacklist := make([]string, 0, len(c.GitHub.Blacklist))
	for _, name := range c.GitHub.Blacklist {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			blacklist = append(blacklist, name)
		}
	}
	overrides := make(map[string]Override, len(c.GitHub.Overrides))
	for slug, o := range c.GitHub.Overrides {
		overrides[strings.ToLower(strings.TrimSpace(slug))] = o
	}
	c.GitHub = GitHubSettings{Blacklist: blacklist, Overrides: overrides}
	return c
}

type ResumePage struct {
	Number int
	Total  int
	Text   string
}
