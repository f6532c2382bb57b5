package middleware

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs unary RPCs and converts handler panics into
// codes.Internal.
type LoggingInterceptor struct {
	logger *zap.Logger
	// Methods logged at debug level only
	quietMethods map[string]bool
}

func NewLoggingInterceptor(logger *zap.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingInterceptor{
		logger: logger.Named("grpc"),
		quietMethods: map[string]bool{
			"/grpc.health.v1.Health/Check": true,
		},
	}
}

// Unary returns the server interceptor
func (interceptor *LoggingInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				interceptor.logger.Error("panic recovered",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				resp, err = nil, status.Errorf(codes.Internal, "internal server error")
			}

			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.String("code", status.Code(err).String()),
				zap.Duration("took", time.Since(start)),
			}
			switch {
			case err != nil:
				interceptor.logger.Warn("rpc failed", append(fields, zap.Error(err))...)
			case interceptor.quietMethods[info.FullMethod]:
				interceptor.logger.Debug("rpc", fields...)
			default:
				interceptor.logger.Info("rpc", fields...)
			}
		}()

		return handler(ctx, req)
	}
}
