package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"folio/internal/modules/plugin/domain"
	"folio/internal/modules/plugin/dto"
	pluginout "folio/internal/modules/plugin/port/out"
)

const maxConcurrentPlugins = 4

type PluginService struct {
	store pluginout.ManifestStore
	host  pluginout.Host
	log   *slog.Logger
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host, log *slog.Logger) *PluginService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &PluginService{store: store, host: host, log: log}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// FetchProjects runs the enabled projects plugins concurrently and returns
// their records in manifest order.
func (s *PluginService) FetchProjects(ctx context.Context) ([]dto.ProjectRecord, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	runnable := make([]domain.Manifest, 0, len(manifests))
	for _, m := range manifests {
		if err := s.runnable(m); err != nil {
			if !errors.Is(err, domain.ErrPluginDisabled) {
				s.log.Warn("skipping plugin", "plugin", m.Name, "err", err)
			}
			continue
		}
		runnable = append(runnable, m)
	}
	if len(runnable) == 0 || s.host == nil {
		return []dto.ProjectRecord{}, nil
	}

	batches := make([][]dto.ProjectRecord, len(runnable))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPlugins)
	for i, m := range runnable {
		g.Go(func() error {
			records, err := s.host.ListProjects(gctx, m)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					err = fmt.Errorf("%w: %s", domain.ErrPluginTimeout, m.Name)
				}
				s.log.Warn("plugin projects failed", "plugin", m.Name, "err", err)
				return nil
			}
			batch := make([]dto.ProjectRecord, 0, len(records))
			for _, r := range records {
				if err := r.Validate(); err != nil {
					s.log.Warn("dropping plugin project", "plugin", m.Name, "err", err)
					continue
				}
				batch = append(batch, dto.ProjectRecord{
					Plugin:             m.Name,
					ID:                 r.ID,
					Name:               r.Name,
					DescriptionSerious: r.DescriptionSerious,
					DescriptionPlayful: r.DescriptionPlayful,
					Tech:               r.Tech,
					GitHubURL:          r.GitHubURL,
					LiveURL:            r.LiveURL,
				})
			}
			batches[i] = batch
			return nil
		})
	}
	_ = g.Wait()

	out := []dto.ProjectRecord{}
	for _, batch := range batches {
		out = append(out, batch...)
	}
	return out, nil
}

func (s *PluginService) runnable(m domain.Manifest) error {
	if !m.Enabled {
		return fmt.Errorf("%w: %s", domain.ErrPluginDisabled, m.Name)
	}
	if !m.HasCapability(domain.CapabilityProjects) {
		return fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, domain.CapabilityProjects)
	}
	return checksumMatches(m.Binary, m.SHA256)
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
