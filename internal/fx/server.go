package fx

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/amityadav/sitefinder/internal/config"
	"github.com/amityadav/sitefinder/internal/core"
	"github.com/amityadav/sitefinder/internal/enrich"
	"github.com/amityadav/sitefinder/internal/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// ServerModule provides the gRPC and HTTP servers
var ServerModule = fx.Module("server",
	fx.Provide(
		NewGRPCServer,
		NewHTTPHandler,
	),
	fx.Invoke(StartServers),
)

// GRPCServerResult exposes the server and its health registry
type GRPCServerResult struct {
	fx.Out
	Server *grpc.Server
	Health *health.Server
}

// NewGRPCServer creates the gRPC server with health and reflection
func NewGRPCServer(logger *zap.Logger) GRPCServerResult {
	srv, hs := server.NewGRPCServer(logger)
	return GRPCServerResult{Server: srv, Health: hs}
}

// NewHTTPHandler builds the JSON API router with gRPC-Web in front
func NewHTTPHandler(cfg config.Config, c *core.SearchCore, hist HistoryStore, en *enrich.Enricher, grpcServer *grpc.Server, logger *zap.Logger) http.Handler {
	h := server.NewHandler(c, hist, en, logger)
	wrapped := server.CreateGRPCWebWrapper(grpcServer, cfg.AllowedOrigins)
	return server.NewRouter(h, wrapped, cfg.AllowedOrigins, logger)
}

// ServerParams groups dependencies for starting servers
type ServerParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	Config     config.Config
	GRPCServer *grpc.Server
	Health     *health.Server
	Handler    http.Handler
	Logger     *zap.Logger
}

// StartServers starts gRPC and HTTP servers with lifecycle management
func StartServers(p ServerParams) {
	httpServer := &http.Server{
		Addr:    p.Config.HTTPAddr,
		Handler: p.Handler,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			grpcLis, err := net.Listen("tcp", p.Config.GRPCAddr)
			if err != nil {
				return err
			}
			httpLis, err := net.Listen("tcp", p.Config.HTTPAddr)
			if err != nil {
				grpcLis.Close()
				return err
			}

			go func() {
				p.Logger.Info("gRPC server listening", zap.String("addr", p.Config.GRPCAddr))
				if err := p.GRPCServer.Serve(grpcLis); err != nil {
					p.Logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			go func() {
				p.Logger.Info("HTTP server (gRPC-Web + REST) listening", zap.String("addr", p.Config.HTTPAddr))
				if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("HTTP server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("shutting down servers")
			p.Health.Shutdown()
			err := httpServer.Shutdown(ctx)
			p.GRPCServer.GracefulStop()
			return err
		},
	})
}
