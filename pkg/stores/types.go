package stores

import (
	"context"
	"errors"
	"time"
)

// Driver names accepted by Config.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when a requested analysis does not exist.
var ErrNotFound = errors.New("not found")

// Analysis is the stored summary of one Analyze or AnalyzeStack call.
type Analysis struct {
	ID          string        `json:"id"`
	Method      string        `json:"method"`
	Resources   int           `json:"resources"`
	Diagnostics int           `json:"diagnostics"`
	Mandatory   int           `json:"mandatory"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Diagnostic is one finding of a stored analysis, in report order.
type Diagnostic struct {
	ID               int64    `json:"id"`
	AnalysisID       string   `json:"analysis_id"`
	Ordinal          int      `json:"ordinal"`
	PolicyName       string   `json:"policy_name"`
	PackName         string   `json:"pack_name"`
	PackVersion      string   `json:"pack_version"`
	EnforcementLevel string   `json:"enforcement_level"`
	URN              string   `json:"urn,omitempty"`
	Message          string   `json:"message"`
	Tags             []string `json:"tags,omitempty"`
}

// PolicyStat counts the findings recorded for one policy.
type PolicyStat struct {
	PolicyName       string    `json:"policy_name"`
	PackName         string    `json:"pack_name"`
	EnforcementLevel string    `json:"enforcement_level"`
	Count            int       `json:"count"`
	LastSeen         time.Time `json:"last_seen"`
}

// ListOptions filters ListAnalyses.
type ListOptions struct {
	// Method restricts results to one RPC method when set.
	Method string

	// MandatoryOnly keeps analyses with at least one mandatory finding.
	MandatoryOnly bool

	// Since keeps analyses started at or after the given time.
	Since time.Time

	Limit  int
	Offset int
}

// Store persists analysis history.
type Store interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error

	// SaveAnalysis writes the analysis and its diagnostics in one transaction.
	SaveAnalysis(ctx context.Context, analysis *Analysis, diags []*Diagnostic) error
	GetAnalysis(ctx context.Context, id string) (*Analysis, error)
	ListAnalyses(ctx context.Context, opts ListOptions) ([]*Analysis, error)
	ListDiagnostics(ctx context.Context, analysisID string) ([]*Diagnostic, error)
	PolicyStats(ctx context.Context, since time.Time) ([]*PolicyStat, error)

	// Prune deletes analyses started before the cutoff and returns how many.
	Prune(ctx context.Context, before time.Time) (int64, error)

	HealthCheck(ctx context.Context) error
}
