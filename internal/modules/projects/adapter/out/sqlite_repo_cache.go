package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"folio/internal/modules/projects/domain"
	projectsout "folio/internal/modules/projects/port/out"
	apperrors "folio/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteRepoCache struct {
	db *sql.DB
}

func NewSQLiteRepoCache(dbPath string) (*SQLiteRepoCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteRepoCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

var _ projectsout.RepoCache = (*SQLiteRepoCache)(nil)

func (c *SQLiteRepoCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS project_cache (
  owner TEXT NOT NULL,
  position INTEGER NOT NULL,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  description_serious TEXT NOT NULL,
  description_playful TEXT NOT NULL,
  tech_json TEXT NOT NULL,
  github_url TEXT NOT NULL,
  live_url TEXT NOT NULL,
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (owner, position)
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create project_cache table: %w", err)
	}
	return nil
}

func (c *SQLiteRepoCache) Get(ctx context.Context, owner string) (domain.Snapshot, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT id, name, description_serious, description_playful, tech_json, github_url, live_url, fetched_at
FROM project_cache WHERE owner = ? ORDER BY position`, owner)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("query project cache: %w", err)
	}
	defer rows.Close()

	snapshot := domain.Snapshot{Owner: owner}
	for rows.Next() {
		var (
			p         domain.Project
			techJSON  string
			fetchedAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.DescriptionSerious, &p.DescriptionPlayful, &techJSON, &p.GitHubURL, &p.LiveURL, &fetchedAt); err != nil {
			return domain.Snapshot{}, fmt.Errorf("scan project cache: %w", err)
		}
		if err := json.Unmarshal([]byte(techJSON), &p.Tech); err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode cached tech for %s: %w", p.ID, err)
		}
		at, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("parse fetched_at: %w", err)
		}
		snapshot.FetchedAt = at
		snapshot.Projects = append(snapshot.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("iterate project cache: %w", err)
	}
	if len(snapshot.Projects) == 0 {
		return domain.Snapshot{}, apperrors.ErrCacheMiss
	}
	return snapshot, nil
}

// Put replaces the owner's cached listing.
func (c *SQLiteRepoCache) Put(ctx context.Context, snapshot domain.Snapshot) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin project cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_cache WHERE owner = ?`, snapshot.Owner); err != nil {
		return fmt.Errorf("clear project cache: %w", err)
	}
	fetchedAt := snapshot.FetchedAt.UTC().Format(time.RFC3339Nano)
	const stmt = `
INSERT INTO project_cache (owner, position, id, name, description_serious, description_playful, tech_json, github_url, live_url, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	for i, p := range snapshot.Projects {
		tech := p.Tech
		if tech == nil {
			tech = []string{}
		}
		techJSON, err := json.Marshal(tech)
		if err != nil {
			return fmt.Errorf("encode tech for %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, stmt, snapshot.Owner, i, p.ID, p.Name, p.DescriptionSerious, p.DescriptionPlayful, string(techJSON), p.GitHubURL, p.LiveURL, fetchedAt); err != nil {
			return fmt.Errorf("write project cache: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit project cache: %w", err)
	}
	return nil
}

func (c *SQLiteRepoCache) Close() error {
	return c.db.Close()
}
