// Package telemetry provides observability for the analyzer service.
//
// It combines structured logging (zerolog), distributed tracing
// (OpenTelemetry), Prometheus metrics and an in-process event bus:
//
//	cfg := telemetry.DefaultConfig()
//	cfg.Metrics.Enabled = true
//
//	tel, err := telemetry.NewTelemetry(cfg)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	addr, err := tel.Metrics.StartMetricsServer(ctx, tel.Logger.Zerolog())
//
// # Logging
//
// Logs go to stderr by default. Plugin hosts read the listening port from
// the first line of stdout, so nothing else may be written there.
//
//	logger := tel.Logger.NewComponentLogger("policy").WithPolicy("froyo-builtin", "required-tags")
//	logger.WithURN(urn).Warn().Msg("Policy evaluation failed")
//
// # Tracing
//
// The gRPC server opens one span per RPC (StartRPCSpan) and the policy
// engine one span per evaluated policy (StartPolicySpan). Exporters are
// "otlp" (gRPC), "stdout" (pretty JSON on stderr) and "none".
//
// # Metrics
//
// Exposed under <namespace>_*, froyo_analyzer by default:
//
//   - rpc_requests_total{method,code} and rpc_duration_seconds{method}
//   - diagnostics_total{pack,policy,enforcement_level}
//   - policy_evaluations_total{policy,language,result}
//   - policy_evaluation_duration_seconds{language}
//   - policies_loaded{pack} and pack_reloads_total{status}
//   - errors_by_class_total and errors_by_code_total
//
// # Events
//
// Published types are analysis.completed, policy.violation, pack.loaded and
// pack.reload_failed. Subscribers are called in subscription order; in async
// mode from a single background goroutine.
//
// # Nil safety
//
// *Metrics, *Tracer and *EventPublisher methods accept nil receivers, so
// callers may leave any of them unset.
package telemetry
