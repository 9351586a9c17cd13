package dto

import "time"

type ProjectOutput struct {
	ID                 string
	Name               string
	DescriptionSerious string
	DescriptionPlayful string
	Tech               []string
	GitHubURL          string
	LiveURL            string
	Pinned             bool
}

type ListInput struct {
	// Refresh skips the cache and refetches from GitHub.
	Refresh bool
}

type ListOutput struct {
	Projects []ProjectOutput
	// Source is "static", "cache" or "live".
	Source    string
	FetchedAt time.Time
}
