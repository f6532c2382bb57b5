package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP handler: gRPC-Web first, then the JSON API.
// grpcWeb may be nil.
func NewRouter(h *Handler, grpcWeb *grpcweb.WrappedGrpcServer, origins []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpLogger := logger.Named("http")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(httpLogger))
	router.Use(Recovery(httpLogger))
	router.Use(GRPCWeb(grpcWeb))
	router.Use(CORS(origins))

	h.Register(router)
	return router
}
