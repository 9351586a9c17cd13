package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"folio/internal/modules/projects/domain"
	projectsout "folio/internal/modules/projects/port/out"
	apperrors "folio/internal/platform/errors"
)

const (
	defaultAPIBase    = "https://api.github.com"
	defaultPerPage    = 100
	githubHTTPTimeout = 10 * time.Second
	maxResponseBytes  = 4 << 20
)

type GitHubOptions struct {
	APIBaseURL string
	Token      string
	PerPage    int
	// Client replaces the default HTTP client, mostly for tests.
	Client *http.Client
}

type GitHubClient struct {
	apiBase    string
	token      string
	perPage    int
	httpClient *http.Client
}

func NewGitHubClient(opts GitHubOptions) projectsout.RepoSource {
	client := &GitHubClient{
		apiBase:    strings.TrimRight(opts.APIBaseURL, "/"),
		token:      opts.Token,
		perPage:    opts.PerPage,
		httpClient: opts.Client,
	}
	if client.apiBase == "" {
		client.apiBase = defaultAPIBase
	}
	if client.perPage <= 0 || client.perPage > 100 {
		client.perPage = defaultPerPage
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: githubHTTPTimeout}
	}
	return client
}

type githubRepo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	HTMLURL     string  `json:"html_url"`
	Homepage    *string `json:"homepage"`
	Fork        bool    `json:"fork"`
}

// ListRepos fetches the first page of the owner's public repositories.
func (c *GitHubClient) ListRepos(ctx context.Context, owner string) ([]domain.Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d", c.apiBase, url.PathEscape(owner), c.perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "folio")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch github repos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("github returned status %d: %w", resp.StatusCode, apperrors.ErrUnexpectedResponse)
	}

	var raw []githubRepo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode github repos: %w", err)
	}
	repos := make([]domain.Repo, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, domain.Repo{
			ID:          r.ID,
			Name:        r.Name,
			Description: deref(r.Description),
			Language:    deref(r.Language),
			HTMLURL:     r.HTMLURL,
			Homepage:    deref(r.Homepage),
			Fork:        r.Fork,
		})
	}
	return repos, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
