package main

import (
	"log"

	appfx "github.com/amityadav/sitefinder/internal/fx"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Run blocks until SIGINT/SIGTERM, then runs OnStop hooks.
	app := fx.New(Options())
	app.Run()
}

// Options lists the application modules
func Options() fx.Option {
	return fx.Options(
		appfx.ConfigModule,   // config.Config
		appfx.LoggerModule,   // *zap.Logger, fx event logging
		appfx.StoreModule,    // *store.PostgresStore (nil without DATABASE_URL)
		appfx.SettingsModule, // *settings.Service
		appfx.HistoryModule,  // fx.HistoryStore
		appfx.AIModule,       // ai.Provider
		appfx.CoreModule,     // *core.SearchCore
		appfx.EnrichModule,   // *enrich.Enricher
		appfx.WorkerModule,   // *worker.Worker
		appfx.ServerModule,   // gRPC + HTTP servers
	)
}
