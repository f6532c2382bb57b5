package settings

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Store defines the interface for settings persistence
type Store interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	SetSetting(ctx context.Context, key string, value []byte, description string) error
}

// Service provides type-safe access to settings with in-memory caching.
// A nil Store serves defaults only.
type Service struct {
	store        Store
	logger       *zap.Logger
	historyLimit int
	tuning       SearchTuning
	mu           sync.RWMutex
}

// NewService creates a settings service and loads settings from the store.
// historyLimit overrides DefaultHistoryLimit when positive.
func NewService(ctx context.Context, store Store, historyLimit int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	s := &Service{
		store:        store,
		logger:       logger.Named("settings"),
		historyLimit: historyLimit,
		tuning:       DefaultSearchTuning,
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return s
}

// HistoryLimit returns the cached history cap
func (s *Service) HistoryLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyLimit
}

// SearchTuning returns the cached search tuning
func (s *Service) SearchTuning() SearchTuning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tuning
}

// Refresh reloads all settings from the store. Missing or invalid values
// keep whatever is currently cached.
func (s *Service) Refresh(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.GetSetting(ctx, string(KeyHistoryLimit))
	if err != nil {
		s.logger.Debug("setting not found, keeping current", zap.String("key", string(KeyHistoryLimit)), zap.Error(err))
	} else {
		var limit int
		if err := json.Unmarshal(data, &limit); err != nil || limit <= 0 {
			s.logger.Warn("invalid setting", zap.String("key", string(KeyHistoryLimit)), zap.ByteString("value", data))
		} else {
			s.historyLimit = limit
		}
	}

	data, err = s.store.GetSetting(ctx, string(KeySearchTuning))
	if err != nil {
		s.logger.Debug("setting not found, keeping current", zap.String("key", string(KeySearchTuning)), zap.Error(err))
	} else {
		var tuning SearchTuning
		if err := json.Unmarshal(data, &tuning); err != nil || !tuning.Valid() {
			s.logger.Warn("invalid setting", zap.String("key", string(KeySearchTuning)), zap.ByteString("value", data))
		} else {
			s.tuning = tuning
		}
	}

	s.logger.Debug("settings loaded", zap.Int("history_limit", s.historyLimit), zap.Any("search_tuning", s.tuning))
	return nil
}

// Seed inserts default values for any missing settings
func (s *Service) Seed(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	for _, key := range AllKeys() {
		if _, err := s.store.GetSetting(ctx, string(key)); err == nil {
			continue
		}

		defaultVal := GetDefault(key)
		if key == KeyHistoryLimit {
			defaultVal = s.HistoryLimit()
		}

		data, err := json.Marshal(defaultVal)
		if err != nil {
			s.logger.Warn("failed to marshal default", zap.String("key", string(key)), zap.Error(err))
			continue
		}

		if err := s.store.SetSetting(ctx, string(key), data, KeyDescription(key)); err != nil {
			s.logger.Warn("failed to seed", zap.String("key", string(key)), zap.Error(err))
			continue
		}

		s.logger.Info("seeded default", zap.String("key", string(key)))
	}

	return s.Refresh(ctx)
}
