package out

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"folio/internal/modules/profile/domain"
	profileout "folio/internal/modules/profile/port/out"
)

//go:embed content.yaml
var defaultContent []byte

// DefaultContent returns the document shipped with the binary.
func DefaultContent() []byte {
	return append([]byte(nil), defaultContent...)
}

type YAMLContentStore struct {
	path string
	log  *slog.Logger
}

// NewYAMLContentStore reads path, or the embedded document when path is empty.
func NewYAMLContentStore(path string, log *slog.Logger) profileout.ContentStore {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &YAMLContentStore{path: path, log: log}
}

func (s *YAMLContentStore) Load(_ context.Context) (domain.Content, error) {
	raw := defaultContent
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return domain.Content{}, fmt.Errorf("read content: %w", err)
		}
		raw = data
	}
	var content domain.Content
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&content); err != nil {
		return domain.Content{}, fmt.Errorf("decode content: %w", err)
	}
	return content, nil
}

// Watch signals after each write, create or rename of the content file.
// Signals coalesce while the consumer is busy. The embedded document never
// changes, so without a path the channel only closes with ctx.
func (s *YAMLContentStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	changes := make(chan struct{}, 1)
	if s.path == "" {
		go func() {
			<-ctx.Done()
			close(changes)
		}()
		return changes, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}
	target := filepath.Clean(s.path)
	go func() {
		defer close(changes)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("content watcher error", "err", err)
			}
		}
	}()
	return changes, nil
}
