package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// MultiProvider tries each provider in order until one answers.
// Each provider is called at most once per search.
type MultiProvider struct {
	providers []Provider
	logger    *zap.Logger
}

// NewMultiProvider creates a new multi-provider orchestrator
func NewMultiProvider(logger *zap.Logger, providers ...Provider) *MultiProvider {
	if len(providers) == 0 {
		panic("at least one provider required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MultiProvider{
		providers: providers,
		logger:    logger.Named("multi"),
	}
}

func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "Multi[" + strings.Join(names, "+") + "]"
}

// FindBusinesses falls through to the next provider on error or empty text
func (m *MultiProvider) FindBusinesses(ctx context.Context, req SearchRequest) (string, error) {
	var errs []error
	for i, provider := range m.providers {
		m.logger.Info("trying provider",
			zap.String("provider", provider.Name()),
			zap.Int("attempt", i+1),
			zap.Int("of", len(m.providers)))

		text, err := provider.FindBusinesses(ctx, req)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = fmt.Errorf("%s returned no data", provider.Name())
		}
		m.logger.Warn("provider failed", zap.String("provider", provider.Name()), zap.Error(err))
		errs = append(errs, err)

		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("all providers failed: %w", errors.Join(errs...))
}
