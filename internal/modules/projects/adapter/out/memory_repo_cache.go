package out

import (
	"context"
	"slices"
	"sync"

	"folio/internal/modules/projects/domain"
	projectsout "folio/internal/modules/projects/port/out"
	apperrors "folio/internal/platform/errors"
)

// MemoryRepoCache keeps snapshots for the life of the process when no
// database is available.
type MemoryRepoCache struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Snapshot
}

func NewMemoryRepoCache() *MemoryRepoCache {
	return &MemoryRepoCache{snapshots: map[string]domain.Snapshot{}}
}

var _ projectsout.RepoCache = (*MemoryRepoCache)(nil)

func (c *MemoryRepoCache) Get(_ context.Context, owner string) (domain.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.snapshots[owner]
	if !ok {
		return domain.Snapshot{}, apperrors.ErrCacheMiss
	}
	snapshot.Projects = slices.Clone(snapshot.Projects)
	return snapshot, nil
}

func (c *MemoryRepoCache) Put(_ context.Context, snapshot domain.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot.Projects = slices.Clone(snapshot.Projects)
	c.snapshots[snapshot.Owner] = snapshot
	return nil
}
