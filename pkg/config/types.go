package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the analyzer service configuration. Field names follow the CUE
// schema in schema.go.
type Config struct {
	Analyzer  AnalyzerConfig  `json:"analyzer"`
	Server    ServerConfig    `json:"server"`
	Policy    PolicyConfig    `json:"policy"`
	Store     StoreConfig     `json:"store"`
	Telemetry TelemetryConfig `json:"telemetry"`

	// SourceFiles lists the files the configuration was read from.
	SourceFiles []string `json:"-"`
}

// AnalyzerConfig identifies the analyzer in GetAnalyzerInfo.
type AnalyzerConfig struct {
	Name        string `json:"name" validate:"required,max=100"`
	DisplayName string `json:"displayName"`

	// Version defaults to the binary version when empty.
	Version string `json:"version"`
}

// ServerConfig configures the gRPC listener.
type ServerConfig struct {
	Host string `json:"host" validate:"required"`

	// Port 0 picks a free port, which is what plugin hosts expect.
	Port int `json:"port" validate:"gte=0,lte=65535"`

	ShutdownTimeout string `json:"shutdownTimeout" validate:"required"`
}

// PolicyConfig configures the policy engine.
type PolicyConfig struct {
	// Packs are policy pack directories, loaded in order.
	Packs []string `json:"packs" validate:"dive,required"`

	// Watch reloads packs when their files change.
	Watch bool `json:"watch"`

	DisableBuiltin bool `json:"disableBuiltin"`

	EvalTimeout string `json:"evalTimeout" validate:"required"`
	MaxSteps    int64  `json:"maxSteps" validate:"gte=0"`

	// Parallelism bounds concurrent policy evaluations per call.
	Parallelism int `json:"parallelism" validate:"gte=1,lte=64"`

	// Overrides are keyed by policy name.
	Overrides map[string]OverrideConfig `json:"overrides" validate:"dive"`
}

// OverrideConfig changes a policy without editing its pack.
type OverrideConfig struct {
	Disabled         bool                   `json:"disabled"`
	EnforcementLevel string                 `json:"enforcementLevel" validate:"omitempty,oneof=advisory mandatory"`
	Config           map[string]interface{} `json:"config"`
}

// StoreConfig selects the analysis history backend.
type StoreConfig struct {
	// Driver is none, sqlite or postgres.
	Driver string `json:"driver" validate:"oneof=none sqlite postgres"`

	// DSN is a file path for sqlite or a connection URL for postgres.
	DSN string `json:"dsn" validate:"required_unless=Driver none"`

	// RecordFatal fails an analysis whose history record cannot be written.
	RecordFatal bool `json:"recordFatal"`
}

// TelemetryConfig configures logging, tracing, metrics and events.
type TelemetryConfig struct {
	Environment string        `json:"environment"`
	LogLevel    string        `json:"logLevel" validate:"oneof=trace debug info warn error"`
	LogFormat   string        `json:"logFormat" validate:"oneof=console json"`
	Tracing     TracingConfig `json:"tracing"`
	Metrics     MetricsConfig `json:"metrics"`
	Events      EventsConfig  `json:"events"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled    bool    `json:"enabled"`
	Exporter   string  `json:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint   string  `json:"endpoint" validate:"required_if=Exporter otlp"`
	SampleRate float64 `json:"sampleRate" validate:"gte=0,lte=1"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address" validate:"required_if=Enabled true"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	Enabled bool `json:"enabled"`
}

// ValidationError is one configuration problem with its source position.
type ValidationError struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Error collects every problem found while loading a configuration.
type Error struct {
	Errors []ValidationError
}

func (e *Error) Error() string {
	if len(e.Errors) == 1 {
		return "invalid configuration: " + e.Errors[0].String()
	}
	parts := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		parts[i] = ve.String()
	}
	return fmt.Sprintf("invalid configuration (%d errors): %s", len(e.Errors), strings.Join(parts, "; "))
}

// EvalTimeoutDuration returns the parsed evaluation timeout.
func (p PolicyConfig) EvalTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(p.EvalTimeout)
	return d
}

// ShutdownTimeoutDuration returns the parsed graceful shutdown timeout.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ShutdownTimeout)
	return d
}

// Address returns host:port for the listener.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
