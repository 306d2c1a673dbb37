package config

import (
	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
	"github.com/openfroyo/froyo-analyzer/pkg/policy"
	"github.com/openfroyo/froyo-analyzer/pkg/telemetry"
)

// TelemetryConfig maps the telemetry section onto telemetry.Config, keeping
// the telemetry package defaults for settings the file does not expose.
func (c *Config) TelemetryConfig(version string) *telemetry.Config {
	tc := telemetry.DefaultConfig()
	tc.ServiceName = c.Analyzer.Name
	tc.ServiceVersion = c.version(version)
	tc.Environment = c.Telemetry.Environment

	tc.Logging.Level = c.Telemetry.LogLevel
	tc.Logging.Format = c.Telemetry.LogFormat

	tc.Tracing.Enabled = c.Telemetry.Tracing.Enabled
	tc.Tracing.Exporter = c.Telemetry.Tracing.Exporter
	tc.Tracing.Endpoint = c.Telemetry.Tracing.Endpoint
	tc.Tracing.SamplingRate = c.Telemetry.Tracing.SampleRate

	tc.Metrics.Enabled = c.Telemetry.Metrics.Enabled
	tc.Metrics.ListenAddress = c.Telemetry.Metrics.Address

	tc.Events.Enabled = c.Telemetry.Events.Enabled

	return tc
}

// EngineConfig maps the analyzer and policy sections onto a policy engine
// configuration. Telemetry collaborators are left for the caller to set.
func (c *Config) EngineConfig(version string) policy.EngineConfig {
	return policy.EngineConfig{
		Name:           c.Analyzer.Name,
		DisplayName:    c.Analyzer.DisplayName,
		Version:        c.version(version),
		EvalTimeout:    c.Policy.EvalTimeoutDuration(),
		MaxSteps:       uint64(c.Policy.MaxSteps),
		Parallelism:    c.Policy.Parallelism,
		DisableBuiltin: c.Policy.DisableBuiltin,
		Overrides:      c.Overrides(),
	}
}

// Overrides converts the configured policy overrides.
func (c *Config) Overrides() map[string]policy.Override {
	out := make(map[string]policy.Override, len(c.Policy.Overrides))
	for name, o := range c.Policy.Overrides {
		out[name] = policy.Override{
			Disabled:         o.Disabled,
			EnforcementLevel: analyzer.EnforcementLevel(o.EnforcementLevel),
			Config:           o.Config,
		}
	}
	return out
}

func (c *Config) version(fallback string) string {
	if c.Analyzer.Version != "" {
		return c.Analyzer.Version
	}
	if fallback != "" {
		return fallback
	}
	return "dev"
}
