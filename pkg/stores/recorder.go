package stores

import (
	"context"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

// Recorder adapts a Store to analyzer.Recorder.
type Recorder struct {
	store Store
}

var _ analyzer.Recorder = (*Recorder)(nil)

// NewRecorder returns a recorder writing to store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record stores the summary and diagnostics of one analysis call.
func (r *Recorder) Record(ctx context.Context, rec *analyzer.AnalysisRecord) error {
	a := &Analysis{
		ID:          rec.ID,
		Method:      rec.Method,
		Resources:   rec.Resources,
		Diagnostics: len(rec.Diagnostics),
		Mandatory:   analyzer.MandatoryCount(rec.Diagnostics),
		StartedAt:   rec.StartedAt,
		Duration:    rec.Duration,
	}

	diags := make([]*Diagnostic, len(rec.Diagnostics))
	for i, d := range rec.Diagnostics {
		diags[i] = &Diagnostic{
			PolicyName:       d.PolicyName,
			PackName:         d.PolicyPackName,
			PackVersion:      d.PolicyPackVersion,
			EnforcementLevel: string(d.EnforcementLevel),
			URN:              d.URN,
			Message:          d.Message,
			Tags:             d.Tags,
		}
	}

	return r.store.SaveAnalysis(ctx, a, diags)
}
