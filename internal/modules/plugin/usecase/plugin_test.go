package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/modules/plugin/domain"
	"folio/internal/modules/plugin/service"
	"folio/internal/modules/plugin/usecase"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct{}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "p1", Version: "1"}, nil
}
func (fakeHost) ListProjects(context.Context, domain.Manifest) ([]domain.ProjectRecord, error) {
	return []domain.ProjectRecord{
		{ID: "p1-blog", Name: "Blog", Tech: []string{"Go"}, GitHubURL: "https://github.com/example/blog"},
	}, nil
}

func TestUsecaseListDoctorAndFetch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	uc := usecase.NewInteractor(service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, fakeHost{}, nil))

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "p1" || list[0].Capabilities[0] != "projects" {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 || !docs[0].LifecycleOK || !docs[0].ChecksumValid {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	records, err := uc.FetchProjects(context.Background())
	if err != nil {
		t.Fatalf("fetch projects: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Blog" || records[0].Plugin != "p1" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func manifestWithBinary(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "p1",
		Version:      "1",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityProjects},
	}
}
