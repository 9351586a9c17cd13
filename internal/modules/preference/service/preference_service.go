package service

import (
	"context"
	"log/slog"
	"sync"

	"folio/internal/modules/preference/domain"
	preferenceout "folio/internal/modules/preference/port/out"
)

// PreferenceService never reports storage failures to its caller. The last
// value saved in this process is kept in memory and served whenever the
// store cannot produce a valid one.
type PreferenceService struct {
	store preferenceout.KVStore
	log   *slog.Logger

	mu     sync.Mutex
	cached domain.Mode
}

func NewPreferenceService(store preferenceout.KVStore, log *slog.Logger) *PreferenceService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &PreferenceService{store: store, log: log}
}

func (s *PreferenceService) Load(ctx context.Context) (domain.Mode, bool) {
	raw, found, err := s.store.Get(ctx, domain.PreferenceKey)
	if err != nil {
		s.log.Warn("preference read failed", "key", domain.PreferenceKey, "err", err)
		return s.fallback()
	}
	if !found {
		return s.fallback()
	}
	mode, ok := domain.ParseMode(raw)
	if !ok {
		s.log.Debug("ignoring unknown stored mode", "value", raw)
		return s.fallback()
	}
	s.remember(mode)
	return mode, true
}

func (s *PreferenceService) Save(ctx context.Context, mode domain.Mode) {
	s.remember(mode)
	if err := s.store.Set(ctx, domain.PreferenceKey, mode.String()); err != nil {
		s.log.Warn("preference write failed", "key", domain.PreferenceKey, "mode", mode, "err", err)
	}
}

func (s *PreferenceService) remember(mode domain.Mode) {
	s.mu.Lock()
	s.cached = mode
	s.mu.Unlock()
}

func (s *PreferenceService) fallback() (domain.Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached, s.cached.Valid()
}
