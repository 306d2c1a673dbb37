package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/openfroyo/froyo-analyzer/pkg/rpc/pulumirpc"
)

// NewGRPCServer builds a grpc.Server exposing the analyzer, the health
// service and server reflection, with the interceptor chain installed
// outermost first: tracing, metrics, logging, recovery. A recovered panic
// reaches the outer interceptors as an Internal error.
func (s *Server) NewGRPCServer(opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	chain := grpc.ChainUnaryInterceptor(
		TracingInterceptor(s.config.Tracer),
		MetricsInterceptor(s.config.Metrics),
		LoggingInterceptor(s.logger),
		RecoveryInterceptor(s.logger),
	)

	gs := grpc.NewServer(append([]grpc.ServerOption{chain}, opts...)...)
	pulumirpc.RegisterAnalyzerServer(gs, s)

	hs := health.NewServer()
	hs.SetServingStatus(pulumirpc.Analyzer_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)

	reflection.Register(gs)

	return gs, hs
}

// Serve serves the analyzer on lis until ctx is cancelled, then stops
// gracefully. In-flight calls still running after ShutdownTimeout are
// cancelled. It returns nil after the server has stopped.
func (s *Server) Serve(ctx context.Context, lis net.Listener, opts ...grpc.ServerOption) error {
	gs, hs := s.NewGRPCServer(opts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		hs.Shutdown()
		s.logger.Info().Msg("Stopping analyzer server")
		s.stop(gs)
	}()

	s.logger.Info().Str("address", lis.Addr().String()).Msg("Analyzer server listening")

	err := gs.Serve(lis)
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		gs.Stop()
		cancel()
		<-stopped
		return fmt.Errorf("analyzer server failed: %w", err)
	}

	// Serve returns as soon as GracefulStop begins; wait for in-flight calls.
	<-stopped
	return nil
}

func (s *Server) stop(gs *grpc.Server) {
	done := make(chan struct{})
	go func() {
		gs.GracefulStop()
		close(done)
	}()

	if s.config.ShutdownTimeout <= 0 {
		<-done
		return
	}

	timer := time.NewTimer(s.config.ShutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		s.logger.Warn().Dur("timeout", s.config.ShutdownTimeout).Msg("Graceful stop timed out, cancelling in-flight calls")
		gs.Stop()
		<-done
	}
}
