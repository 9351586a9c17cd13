package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"folio/internal/modules/profile/domain"
	profileout "folio/internal/modules/profile/port/out"
)

// ProfileService serves the content file. It keeps the last valid document so
// a broken edit never blanks the portfolio.
type ProfileService struct {
	store profileout.ContentStore
	log   *slog.Logger

	mu   sync.Mutex
	last *domain.Content
}

func NewProfileService(store profileout.ContentStore, log *slog.Logger) *ProfileService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ProfileService{store: store, log: log}
}

func (s *ProfileService) Load(ctx context.Context) (domain.Content, error) {
	content, err := s.store.Load(ctx)
	if err == nil {
		err = content.Validate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.last != nil {
			s.log.Warn("content reload failed, keeping previous document", "err", err)
			return *s.last, nil
		}
		return domain.Content{}, fmt.Errorf("load content: %w", err)
	}
	content = content.Normalize()
	s.last = &content
	return content, nil
}

// GitHubUser derives the account name from the profile link.
func GitHubUser(p domain.Profile) string {
	link := strings.TrimRight(strings.TrimSpace(p.Links.GitHub), "/")
	if link == "" {
		return p.Handle
	}
	parts := strings.Split(link, "/")
	return parts[len(parts)-1]
}
