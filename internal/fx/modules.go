package fx

import (
	"context"

	"github.com/amityadav/sitefinder/internal/ai"
	"github.com/amityadav/sitefinder/internal/config"
	"github.com/amityadav/sitefinder/internal/core"
	"github.com/amityadav/sitefinder/internal/enrich"
	"github.com/amityadav/sitefinder/internal/history"
	"github.com/amityadav/sitefinder/internal/settings"
	"github.com/amityadav/sitefinder/internal/store"
	"github.com/amityadav/sitefinder/internal/worker"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// LoggerModule provides the root logger and routes fx's own events through it
var LoggerModule = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: logger.Named("fx")}
	}),
)

// StoreModule provides database connectivity (optional)
var StoreModule = fx.Module("store",
	fx.Provide(NewPostgresStore),
)

// SettingsModule provides runtime settings
var SettingsModule = fx.Module("settings",
	fx.Provide(NewSettingsService),
)

// HistoryModule provides query history
var HistoryModule = fx.Module("history",
	fx.Provide(NewHistoryStore),
)

// AIModule provides the search provider
var AIModule = fx.Module("ai",
	fx.Provide(NewSearchProvider),
)

// CoreModule provides the search session
var CoreModule = fx.Module("core",
	fx.Provide(NewSearchCore),
)

// EnrichModule provides website contact enrichment
var EnrichModule = fx.Module("enrich",
	fx.Provide(enrich.NewEnricher),
)

// WorkerModule provides scheduled maintenance
var WorkerModule = fx.Module("worker",
	fx.Provide(NewMaintenanceWorker),
	fx.Invoke(StartMaintenanceWorker),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewLogger builds a production logger, or a development one for LOG_LEVEL=debug
func NewLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogLevel == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		zcfg := zap.NewProductionConfig()
		if lvl, perr := zap.ParseAtomicLevel(cfg.LogLevel); perr == nil {
			zcfg.Level = lvl
		}
		logger, err = zcfg.Build()
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

// NewPostgresStore connects to Postgres when DATABASE_URL is set and
// returns nil otherwise, leaving history and settings in memory.
func NewPostgresStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*store.PostgresStore, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, history and settings stay in memory")
		return nil, nil
	}

	ctx := context.Background()
	st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			st.Close()
			return nil
		},
	})
	logger.Info("PostgresStore initialized")
	return st, nil
}

// NewSettingsService creates the settings service, seeding defaults when
// a store is available
func NewSettingsService(cfg config.Config, st *store.PostgresStore, logger *zap.Logger) *settings.Service {
	ctx := context.Background()

	var backing settings.Store
	if st != nil {
		backing = st
	}

	svc := settings.NewService(ctx, backing, cfg.HistoryLimit, logger)
	if err := svc.Seed(ctx); err != nil {
		logger.Warn("failed to seed settings", zap.Error(err))
	}
	return svc
}

// HistoryStore is the query history with pruning exposed for maintenance
type HistoryStore interface {
	history.Store
	worker.Pruner
}

// NewHistoryStore picks the Postgres history when a store is available
func NewHistoryStore(st *store.PostgresStore, svc *settings.Service, logger *zap.Logger) HistoryStore {
	limit := history.LimitFunc(svc.HistoryLimit)
	if st != nil {
		logger.Info("history backed by Postgres")
		return history.NewDBStore(st, limit)
	}
	logger.Info("history kept in memory")
	return history.NewMemoryStore(limit)
}

// NewSearchProvider creates the provider selected by SEARCH_PROVIDER
func NewSearchProvider(cfg config.Config, logger *zap.Logger) (ai.Provider, error) {
	p, err := ai.NewProvider(context.Background(), cfg.SearchProvider, ai.Keys{
		Gemini:      cfg.GeminiAPIKey,
		GeminiModel: cfg.GeminiModel,
		Groq:        cfg.GroqAPIKey,
		Cerebras:    cfg.CerebrasAPIKey,
		SerpAPI:     cfg.SerpAPIKey,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("search provider initialized", zap.String("provider", p.Name()))
	return p, nil
}

// NewSearchCore creates the search session
func NewSearchCore(cfg config.Config, provider ai.Provider, hist HistoryStore, svc *settings.Service, logger *zap.Logger) *core.SearchCore {
	return core.NewSearchCore(provider, hist, svc, cfg.SearchTimeout, logger)
}

// NewMaintenanceWorker creates the settings/history maintenance worker
func NewMaintenanceWorker(cfg config.Config, svc *settings.Service, hist HistoryStore, logger *zap.Logger) *worker.Worker {
	return worker.NewWorker(svc, hist, cfg.SettingsRefresh, logger)
}

// StartMaintenanceWorker ties the worker to the app lifecycle
func StartMaintenanceWorker(lc fx.Lifecycle, w *worker.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return w.Start()
		},
		OnStop: func(context.Context) error {
			w.Stop()
			return nil
		},
	})
}
