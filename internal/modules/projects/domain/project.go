package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLimit        = 6
	fallbackDescription = "GitHub repository"
)

type Project struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	DescriptionSerious string   `json:"description_serious"`
	DescriptionPlayful string   `json:"description_playful"`
	Tech               []string `json:"tech"`
	GitHubURL          string   `json:"github_url,omitempty"`
	LiveURL            string   `json:"live_url,omitempty"`
	Pinned             bool     `json:"pinned"`
}

// Slug is the lowercase repository name taken from the GitHub URL.
func (p Project) Slug() string {
	url := strings.TrimRight(p.GitHubURL, "/")
	if url == "" {
		return ""
	}
	return strings.ToLower(url[strings.LastIndex(url, "/")+1:])
}

// Repo is a repository as listed by the GitHub API.
type Repo struct {
	ID          int64
	Name        string
	Description string
	Language    string
	HTMLURL     string
	Homepage    string
	Fork        bool
}

func FromRepo(r Repo) Project {
	description := strings.TrimSpace(r.Description)
	if description == "" {
		description = fallbackDescription
	}
	tech := []string{}
	if r.Language != "" {
		tech = append(tech, r.Language)
	}
	return Project{
		ID:                 "github-" + strconv.FormatInt(r.ID, 10),
		Name:               r.Name,
		DescriptionSerious: description,
		DescriptionPlayful: description,
		Tech:               tech,
		GitHubURL:          r.HTMLURL,
		LiveURL:            strings.TrimSpace(r.Homepage),
	}
}

// FromRepos maps the owner's own repositories, skipping forks.
func FromRepos(repos []Repo) []Project {
	out := make([]Project, 0, len(repos))
	for _, r := range repos {
		if r.Fork {
			continue
		}
		out = append(out, FromRepo(r))
	}
	return out
}

type Override struct {
	Name               string
	DescriptionSerious string
	DescriptionPlayful string
	Tech               []string
	LiveURL            string
	Pinned             *bool
}

func (o Override) apply(p Project) Project {
	if o.Name != "" {
		p.Name = o.Name
	}
	if o.DescriptionSerious != "" {
		p.DescriptionSerious = o.DescriptionSerious
	}
	if o.DescriptionPlayful != "" {
		p.DescriptionPlayful = o.DescriptionPlayful
	}
	if len(o.Tech) > 0 {
		p.Tech = append([]string(nil), o.Tech...)
	}
	if o.LiveURL != "" {
		p.LiveURL = o.LiveURL
	}
	if o.Pinned != nil {
		p.Pinned = *o.Pinned
	}
	return p
}

// Rules shape the remote list. Keys are lowercase repository slugs.
type Rules struct {
	Blacklist map[string]bool
	Overrides map[string]Override
	Limit     int
}

func NewRules(blacklist []string, overrides map[string]Override, limit int) Rules {
	rules := Rules{Blacklist: map[string]bool{}, Overrides: map[string]Override{}, Limit: limit}
	for _, name := range blacklist {
		rules.Blacklist[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for slug, o := range overrides {
		rules.Overrides[strings.ToLower(strings.TrimSpace(slug))] = o
	}
	if rules.Limit <= 0 {
		rules.Limit = DefaultLimit
	}
	return rules
}

// Select drops blacklisted repositories, keeps the first Limit and applies
// overrides. It is safe to run again on its own output.
func (r Rules) Select(projects []Project) []Project {
	out := make([]Project, 0, min(len(projects), r.Limit))
	for _, p := range projects {
		if len(out) == r.Limit {
			break
		}
		if r.Blacklist[p.Slug()] {
			continue
		}
		out = append(out, r.Override(p))
	}
	return out
}

func (r Rules) Override(p Project) Project {
	if o, ok := r.Overrides[p.Slug()]; ok {
		return o.apply(p)
	}
	return p
}

// Merge lists the static projects then the remote ones. A static project
// whose GitHub URL also appears remotely is dropped, as is any remote entry
// repeating an earlier ID.
func Merge(static, remote []Project) []Project {
	if len(remote) == 0 {
		return append([]Project(nil), static...)
	}
	remoteURLs := map[string]bool{}
	for _, p := range remote {
		if p.GitHubURL != "" {
			remoteURLs[p.GitHubURL] = true
		}
	}
	out := make([]Project, 0, len(static)+len(remote))
	seen := map[string]bool{}
	for _, p := range static {
		if p.GitHubURL != "" && remoteURLs[p.GitHubURL] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, p := range remote {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Snapshot is a cached GitHub listing before rules are applied.
type Snapshot struct {
	Owner     string
	Projects  []Project
	FetchedAt time.Time
}

func (s Snapshot) Fresh(now time.Time, ttl time.Duration) bool {
	return len(s.Projects) > 0 && now.Sub(s.FetchedAt) < ttl
}

// Catalog is the hand-curated part of the project list plus the rules for
// the remote part.
type Catalog struct {
	Owner     string
	Static    []Project
	Blacklist []string
	Overrides map[string]Override
}

type Source string

const (
	SourceStatic Source = "static"
	SourceCache  Source = "cache"
	SourceLive   Source = "live"
)
