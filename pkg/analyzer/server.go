package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/openfroyo/froyo-analyzer/pkg/rpc/pulumirpc"
	"github.com/openfroyo/froyo-analyzer/pkg/telemetry"
)

// Evaluator evaluates resources against the loaded policies.
type Evaluator interface {
	// Analyze evaluates one resource in isolation.
	Analyze(ctx context.Context, resource Resource) ([]Diagnostic, error)

	// AnalyzeStack evaluates an ordered stack against stack policies.
	AnalyzeStack(ctx context.Context, resources []Resource) ([]Diagnostic, error)

	// Info returns the analyzer identity and the policy catalog.
	Info() AnalyzerInfo
}

// Recorder persists analysis summaries.
type Recorder interface {
	Record(ctx context.Context, record *AnalysisRecord) error
}

// ServerConfig holds the optional collaborators of a Server.
type ServerConfig struct {
	// Version is reported by GetPluginInfo.
	Version string

	// Recorder stores a summary of every analysis. Nil disables history.
	Recorder Recorder

	// RecordFatal makes recorder failures fail the call with Internal.
	// Otherwise they are logged and the diagnostics are still returned.
	RecordFatal bool

	// ShutdownTimeout bounds the graceful stop in Serve. Zero waits for
	// every in-flight call.
	ShutdownTimeout time.Duration

	Metrics *telemetry.Metrics
	Tracer  *telemetry.Tracer
	Events  *telemetry.EventPublisher
}

// Server implements the pulumirpc.AnalyzerServer gRPC service.
type Server struct {
	pulumirpc.UnimplementedAnalyzerServer

	evaluator Evaluator
	logger    zerolog.Logger
	config    ServerConfig
}

// NewServer creates an analyzer service backed by evaluator.
func NewServer(evaluator Evaluator, logger zerolog.Logger, cfg ServerConfig) *Server {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Server{
		evaluator: evaluator,
		logger:    logger.With().Str("component", "analyzer-server").Logger(),
		config:    cfg,
	}
}

// Analyze evaluates a single resource.
func (s *Server) Analyze(ctx context.Context, req *pulumirpc.AnalyzeRequest) (*pulumirpc.AnalyzeResponse, error) {
	startedAt := time.Now()

	res, err := ResourceFromAnalyzeRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}
	s.noteIgnoredOptions(req.GetUrn(), req.GetOptions())
	if err := Validate(res); err != nil {
		return nil, toStatus(err)
	}

	diags, err := s.evaluator.Analyze(ctx, *res)
	if err != nil {
		return nil, toStatus(NewInternalError("policy evaluation failed", err).WithURN(res.URN))
	}

	if err := s.finish(ctx, MethodAnalyze, 1, diags, startedAt); err != nil {
		return nil, toStatus(err)
	}

	return &pulumirpc.AnalyzeResponse{Diagnostics: DiagnosticsToProto(diags)}, nil
}

// AnalyzeStack evaluates every resource of a stack.
func (s *Server) AnalyzeStack(ctx context.Context, req *pulumirpc.AnalyzeStackRequest) (*pulumirpc.AnalyzeResponse, error) {
	startedAt := time.Now()

	resources, err := ResourcesFromProto(req.GetResources())
	if err != nil {
		return nil, toStatus(err)
	}
	for _, r := range req.GetResources() {
		s.noteIgnoredOptions(r.GetUrn(), r.GetOptions())
	}
	if err := ValidateStack(resources); err != nil {
		return nil, toStatus(err)
	}

	diags, err := s.evaluator.AnalyzeStack(ctx, resources)
	if err != nil {
		return nil, toStatus(NewInternalError("stack policy evaluation failed", err))
	}

	if err := s.finish(ctx, MethodAnalyzeStack, len(resources), diags, startedAt); err != nil {
		return nil, toStatus(err)
	}

	return &pulumirpc.AnalyzeResponse{Diagnostics: DiagnosticsToProto(diags)}, nil
}

func (s *Server) noteIgnoredOptions(urn string, opts *pulumirpc.AnalyzerResourceOptions) {
	if undefinedDeleteBeforeReplace(opts) {
		s.logger.Debug().Str("urn", urn).Msg("Ignoring deleteBeforeReplace sent without deleteBeforeReplaceDefined")
	}
}

// GetAnalyzerInfo returns the policy catalog with its effective enforcement levels.
func (s *Server) GetAnalyzerInfo(_ context.Context, _ *emptypb.Empty) (*pulumirpc.AnalyzerInfo, error) {
	info := s.evaluator.Info()
	return AnalyzerInfoToProto(&info), nil
}

// GetPluginInfo returns the plugin version.
func (s *Server) GetPluginInfo(_ context.Context, _ *emptypb.Empty) (*pulumirpc.PluginInfo, error) {
	return &pulumirpc.PluginInfo{Version: s.config.Version}, nil
}

// finish records, counts and publishes a completed analysis.
func (s *Server) finish(ctx context.Context, method string, resources int, diags []Diagnostic, startedAt time.Time) error {
	record := &AnalysisRecord{
		ID:          uuid.New().String(),
		Method:      method,
		Resources:   resources,
		Diagnostics: diags,
		StartedAt:   startedAt,
		Duration:    time.Since(startedAt),
	}

	for i := range diags {
		d := &diags[i]
		s.config.Metrics.RecordDiagnostic(d.PolicyPackName, d.PolicyName, string(d.EnforcementLevel))
		if err := s.config.Events.PublishPolicyViolation(record.ID, d.URN, d.PolicyName, string(d.EnforcementLevel), d.Message); err != nil {
			s.logger.Debug().Err(err).Msg("Dropped policy violation event")
		}
	}
	if err := s.config.Events.PublishAnalysisCompleted(record.ID, method, resources, len(diags), record.Duration); err != nil {
		s.logger.Debug().Err(err).Msg("Dropped analysis event")
	}

	s.logger.Debug().
		Str("analysis_id", record.ID).
		Str("method", method).
		Int("resources", resources).
		Int("diagnostics", len(diags)).
		Int("mandatory", MandatoryCount(diags)).
		Dur("duration", record.Duration).
		Msg("Analysis completed")

	if s.config.Recorder == nil {
		return nil
	}

	if err := s.config.Recorder.Record(ctx, record); err != nil {
		s.config.Metrics.RecordError(string(ErrorClassUnavailable), ErrCodeStoreFailed)
		if s.config.RecordFatal {
			return NewInternalError("failed to record analysis", err).WithCode(ErrCodeStoreFailed)
		}
		s.logger.Warn().Err(err).Str("analysis_id", record.ID).Msg("Failed to record analysis")
	}

	return nil
}
