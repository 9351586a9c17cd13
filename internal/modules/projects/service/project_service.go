package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"folio/internal/modules/projects/domain"
	projectsout "folio/internal/modules/projects/port/out"
	"folio/internal/platform/clock"
	apperrors "folio/internal/platform/errors"
)

type Settings struct {
	// Owner overrides the account derived from the profile.
	Owner    string
	Limit    int
	CacheTTL time.Duration
}

type Deps struct {
	Catalog projectsout.CatalogSource
	Repos   projectsout.RepoSource
	Cache   projectsout.RepoCache
	Plugins projectsout.PluginSource
	Clock   clock.Clock
	Log     *slog.Logger
}

type Result struct {
	Projects  []domain.Project
	Source    domain.Source
	FetchedAt time.Time
}

// ProjectService assembles the project list. Remote sources are best effort:
// any failure is logged and the static list stands in.
type ProjectService struct {
	deps     Deps
	settings Settings
}

func NewProjectService(deps Deps, settings Settings) *ProjectService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}
	if settings.CacheTTL <= 0 {
		settings.CacheTTL = 24 * time.Hour
	}
	return &ProjectService{deps: deps, settings: settings}
}

func (s *ProjectService) List(ctx context.Context, refresh bool) (Result, error) {
	catalog, err := s.deps.Catalog.Catalog(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}
	rules := domain.NewRules(catalog.Blacklist, catalog.Overrides, s.settings.Limit)
	owner := s.settings.Owner
	if owner == "" {
		owner = catalog.Owner
	}

	var (
		github  Result
		plugins []domain.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot, source, err := s.github(gctx, owner, refresh)
		if err != nil {
			s.deps.Log.Warn("github projects unavailable", "owner", owner, "err", err)
			return nil
		}
		github = Result{Projects: rules.Select(snapshot.Projects), Source: source, FetchedAt: snapshot.FetchedAt}
		return nil
	})
	g.Go(func() error {
		if s.deps.Plugins == nil {
			return nil
		}
		records, err := s.deps.Plugins.Projects(gctx)
		if err != nil {
			s.deps.Log.Warn("plugin projects unavailable", "err", err)
			return nil
		}
		for _, p := range records {
			plugins = append(plugins, rules.Override(p))
		}
		return nil
	})
	_ = g.Wait()

	remote := append(append([]domain.Project{}, github.Projects...), plugins...)
	out := Result{Projects: domain.Merge(catalog.Static, remote), Source: domain.SourceStatic}
	if len(github.Projects) > 0 {
		out.Source = github.Source
		out.FetchedAt = github.FetchedAt
	}
	return out, nil
}

func (s *ProjectService) github(ctx context.Context, owner string, refresh bool) (domain.Snapshot, domain.Source, error) {
	if owner == "" || s.deps.Repos == nil {
		return domain.Snapshot{}, "", errors.New("no github account configured")
	}
	now := s.deps.Clock.Now()
	if !refresh && s.deps.Cache != nil {
		snapshot, err := s.deps.Cache.Get(ctx, owner)
		switch {
		case err == nil && snapshot.Fresh(now, s.settings.CacheTTL):
			return snapshot, domain.SourceCache, nil
		case err != nil && !errors.Is(err, apperrors.ErrCacheMiss):
			s.deps.Log.Warn("project cache read failed", "owner", owner, "err", err)
		}
	}
	repos, err := s.deps.Repos.ListRepos(ctx, owner)
	if err != nil {
		return domain.Snapshot{}, "", err
	}
	snapshot := domain.Snapshot{Owner: owner, Projects: domain.FromRepos(repos), FetchedAt: now}
	if s.deps.Cache != nil {
		if err := s.deps.Cache.Put(ctx, snapshot); err != nil {
			s.deps.Log.Warn("project cache write failed", "owner", owner, "err", err)
		}
	}
	return snapshot, domain.SourceLive, nil
}
