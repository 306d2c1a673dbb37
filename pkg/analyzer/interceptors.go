package analyzer

import (
	"context"
	"fmt"
	"path"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openfroyo/froyo-analyzer/pkg/telemetry"
)

// RecoveryInterceptor turns a panic in a handler into an Internal error.
func RecoveryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("method", info.FullMethod).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from panic in handler")
				resp = nil
				err = status.Error(codes.Internal, fmt.Sprintf("internal error: %v", r))
			}
		}()
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every call with its status code and duration.
func LoggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		event := logger.Debug()
		if code != codes.OK {
			event = logger.Warn().Err(err)
		}
		event.
			Str("method", path.Base(info.FullMethod)).
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("RPC handled")

		return resp, err
	}
}

// MetricsInterceptor counts calls and observes their latency.
func MetricsInterceptor(metrics *telemetry.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		timer := telemetry.NewTimer()
		resp, err := handler(ctx, req)
		metrics.RecordRequest(path.Base(info.FullMethod), status.Code(err).String(), timer.Duration())
		return resp, err
	}
}

// TracingInterceptor wraps every call in a span.
func TracingInterceptor(tracer *telemetry.Tracer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, span := tracer.StartRPCSpan(ctx, path.Base(info.FullMethod))
		defer span.End()

		resp, err := handler(ctx, req)
		if err != nil {
			telemetry.RecordError(span, err)
		} else {
			telemetry.RecordSuccess(span)
		}
		return resp, err
	}
}
