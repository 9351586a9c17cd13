package out

import (
	"context"

	"folio/internal/modules/projects/domain"
)

type CatalogSource interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
}

type RepoSource interface {
	ListRepos(ctx context.Context, owner string) ([]domain.Repo, error)
}

// RepoCache stores the mapped GitHub listing per owner. Get returns
// apperrors.ErrCacheMiss when nothing is stored.
type RepoCache interface {
	Get(ctx context.Context, owner string) (domain.Snapshot, error)
	Put(ctx context.Context, snapshot domain.Snapshot) error
}

type PluginSource interface {
	Projects(ctx context.Context) ([]domain.Project, error)
}
