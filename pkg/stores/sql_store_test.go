package stores

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

// setupTestStore creates an in-memory SQLite store for testing
func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()

	store, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    ":memory:",
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// setupPostgresStore connects to TEST_DATABASE_URL and empties the tables.
func setupPostgresStore(t *testing.T) *SQLStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := Open(context.Background(), Config{Driver: DriverPostgres, DSN: dsn})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.db.Exec("TRUNCATE analyses CASCADE"); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
	return store
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "sqlite", cfg: Config{Driver: DriverSQLite, DSN: "history.db"}},
		{name: "postgres", cfg: Config{Driver: DriverPostgres, DSN: "postgres://localhost/froyo"}},
		{name: "missing dsn", cfg: Config{Driver: DriverSQLite}, wantErr: true},
		{name: "unknown driver", cfg: Config{Driver: "mysql", DSN: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && s.Driver() != tt.cfg.Driver {
				t.Errorf("expected driver %s, got %s", tt.cfg.Driver, s.Driver())
			}
		})
	}
}

func TestNew_MemoryUsesSingleConnection(t *testing.T) {
	s, err := New(Config{Driver: DriverSQLite, DSN: ":memory:", MaxOpenConns: 20})
	if err != nil {
		t.Fatal(err)
	}
	if s.cfg.MaxOpenConns != 1 {
		t.Errorf("expected 1 connection for :memory:, got %d", s.cfg.MaxOpenConns)
	}
}

// TestStoreLifecycle tests database initialization and closure
func TestStoreLifecycle(t *testing.T) {
	store, err := New(Config{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.HealthCheck(ctx); err == nil {
		t.Error("expected health check to fail before Init")
	}
	if err := store.Migrate(ctx); err == nil {
		t.Error("expected migrate to fail before Init")
	}

	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.HealthCheck(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	// A second run is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestStoreFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	store, err := Open(ctx, Config{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.SaveAnalysis(ctx, &Analysis{ID: "a1", Method: analyzer.MethodAnalyze, StartedAt: time.Now()}, nil); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and confirm the data survived.
	store, err = Open(ctx, Config{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()

	if _, err := store.GetAnalysis(ctx, "a1"); err != nil {
		t.Errorf("expected analysis after reopen: %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, setupTestStore)
}

func TestPostgresStore(t *testing.T) {
	runStoreSuite(t, setupPostgresStore)
}

func runStoreSuite(t *testing.T, setup func(*testing.T) *SQLStore) {
	t.Run("SaveAndGet", func(t *testing.T) { testSaveAndGet(t, setup(t)) })
	t.Run("DuplicateID", func(t *testing.T) { testDuplicateID(t, setup(t)) })
	t.Run("List", func(t *testing.T) { testList(t, setup(t)) })
	t.Run("PolicyStats", func(t *testing.T) { testPolicyStats(t, setup(t)) })
	t.Run("Prune", func(t *testing.T) { testPrune(t, setup(t)) })
}

func baseTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func testSaveAndGet(t *testing.T, store *SQLStore) {
	ctx := context.Background()

	a := &Analysis{
		ID:          "analysis-1",
		Method:      analyzer.MethodAnalyzeStack,
		Resources:   3,
		Diagnostics: 2,
		Mandatory:   1,
		StartedAt:   baseTime(),
		Duration:    1500 * time.Millisecond,
	}
	diags := []*Diagnostic{
		{PolicyName: "required-tags", PackName: "acme", PackVersion: "1.0.0", EnforcementLevel: "mandatory", URN: "urn:a", Message: "missing owner", Tags: []string{"tagging"}},
		{PolicyName: "no-public-buckets", PackName: "acme", PackVersion: "1.0.0", EnforcementLevel: "advisory", Message: "stack-wide"},
	}

	if err := store.SaveAnalysis(ctx, a, diags); err != nil {
		t.Fatalf("failed to save analysis: %v", err)
	}

	got, err := store.GetAnalysis(ctx, "analysis-1")
	if err != nil {
		t.Fatalf("failed to get analysis: %v", err)
	}
	if got.Method != analyzer.MethodAnalyzeStack || got.Resources != 3 || got.Mandatory != 1 {
		t.Errorf("unexpected analysis %+v", got)
	}
	if !got.StartedAt.Equal(a.StartedAt) {
		t.Errorf("expected StartedAt %v, got %v", a.StartedAt, got.StartedAt)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("expected duration 1.5s, got %v", got.Duration)
	}

	stored, err := store.ListDiagnostics(ctx, "analysis-1")
	if err != nil {
		t.Fatalf("failed to list diagnostics: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(stored))
	}
	if stored[0].PolicyName != "required-tags" || stored[1].PolicyName != "no-public-buckets" {
		t.Errorf("diagnostics out of order: %s, %s", stored[0].PolicyName, stored[1].PolicyName)
	}
	if stored[0].URN != "urn:a" || len(stored[0].Tags) != 1 || stored[0].Tags[0] != "tagging" {
		t.Errorf("unexpected first diagnostic %+v", stored[0])
	}
	if stored[1].URN != "" || len(stored[1].Tags) != 0 {
		t.Errorf("unexpected second diagnostic %+v", stored[1])
	}

	_, err = store.GetAnalysis(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testDuplicateID(t *testing.T, store *SQLStore) {
	ctx := context.Background()
	a := &Analysis{ID: "dup", Method: analyzer.MethodAnalyze, StartedAt: baseTime()}

	if err := store.SaveAnalysis(ctx, a, nil); err != nil {
		t.Fatalf("failed to save analysis: %v", err)
	}

	d := []*Diagnostic{{PolicyName: "p", PackName: "acme", EnforcementLevel: "advisory"}}
	if err := store.SaveAnalysis(ctx, a, d); err == nil {
		t.Fatal("expected duplicate id to fail")
	}

	// The failed transaction must not leave diagnostics behind.
	stored, err := store.ListDiagnostics(ctx, "dup")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Errorf("expected rollback, found %d diagnostics", len(stored))
	}
}

func testList(t *testing.T, store *SQLStore) {
	ctx := context.Background()
	base := baseTime()

	seed := []*Analysis{
		{ID: "a1", Method: analyzer.MethodAnalyze, StartedAt: base, Mandatory: 0},
		{ID: "a2", Method: analyzer.MethodAnalyzeStack, StartedAt: base.Add(time.Minute), Mandatory: 2},
		{ID: "a3", Method: analyzer.MethodAnalyze, StartedAt: base.Add(2 * time.Minute), Mandatory: 1},
	}
	for _, a := range seed {
		if err := store.SaveAnalysis(ctx, a, nil); err != nil {
			t.Fatalf("failed to save %s: %v", a.ID, err)
		}
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{name: "all newest first", opts: ListOptions{}, want: []string{"a3", "a2", "a1"}},
		{name: "by method", opts: ListOptions{Method: analyzer.MethodAnalyze}, want: []string{"a3", "a1"}},
		{name: "mandatory only", opts: ListOptions{MandatoryOnly: true}, want: []string{"a3", "a2"}},
		{name: "since", opts: ListOptions{Since: base.Add(30 * time.Second)}, want: []string{"a3", "a2"}},
		{name: "limit", opts: ListOptions{Limit: 1}, want: []string{"a3"}},
		{name: "offset", opts: ListOptions{Limit: 2, Offset: 2}, want: []string{"a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListAnalyses(ctx, tt.opts)
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d analyses, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func testPolicyStats(t *testing.T, store *SQLStore) {
	ctx := context.Background()
	base := baseTime()

	mk := func(policy, level string) *Diagnostic {
		return &Diagnostic{PolicyName: policy, PackName: "acme", EnforcementLevel: level}
	}

	if err := store.SaveAnalysis(ctx, &Analysis{ID: "s1", Method: analyzer.MethodAnalyze, StartedAt: base},
		[]*Diagnostic{mk("tags", "mandatory"), mk("naming", "advisory")}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAnalysis(ctx, &Analysis{ID: "s2", Method: analyzer.MethodAnalyze, StartedAt: base.Add(time.Hour)},
		[]*Diagnostic{mk("tags", "mandatory")}); err != nil {
		t.Fatal(err)
	}

	stats, err := store.PolicyStats(ctx, time.Time{})
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}
	if stats[0].PolicyName != "tags" || stats[0].Count != 2 {
		t.Errorf("unexpected first stat %+v", stats[0])
	}
	if !stats[0].LastSeen.Equal(base.Add(time.Hour)) {
		t.Errorf("expected last seen %v, got %v", base.Add(time.Hour), stats[0].LastSeen)
	}

	recent, err := store.PolicyStats(ctx, base.Add(30*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Count != 1 {
		t.Errorf("expected one recent stat with count 1, got %+v", recent)
	}
}

func testPrune(t *testing.T, store *SQLStore) {
	ctx := context.Background()
	base := baseTime()

	d := []*Diagnostic{{PolicyName: "p", PackName: "acme", EnforcementLevel: "advisory"}}
	for i, id := range []string{"old", "mid", "new"} {
		a := &Analysis{ID: id, Method: analyzer.MethodAnalyze, StartedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := store.SaveAnalysis(ctx, a, d); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.Prune(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pruned, got %d", n)
	}

	if _, err := store.GetAnalysis(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected old analysis pruned, got %v", err)
	}
	diags, err := store.ListDiagnostics(ctx, "old")
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Errorf("expected diagnostics to cascade, found %d", len(diags))
	}
	if _, err := store.GetAnalysis(ctx, "new"); err != nil {
		t.Errorf("expected new analysis kept: %v", err)
	}
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{cfg: Config{Driver: DriverPostgres}}
	lite := &SQLStore{cfg: Config{Driver: DriverSQLite}}
	query := "SELECT * FROM t WHERE a = ? AND b = ?"

	if got := pg.rebind(query); got != "SELECT * FROM t WHERE a = $1 AND b = $2" {
		t.Errorf("unexpected postgres query %q", got)
	}
	if got := lite.rebind(query); got != query {
		t.Errorf("sqlite query should be unchanged, got %q", got)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)

	tests := []struct {
		name  string
		input any
	}{
		{name: "time", input: want},
		{name: "sqlite text", input: "2026-03-01 12:00:00.0000005+00:00"},
		{name: "bytes", input: []byte("2026-03-01T12:00:00.0000005Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(tt.input)
			if err != nil {
				t.Fatalf("parseTime failed: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}

	if _, err := parseTime("yesterday"); err == nil {
		t.Error("expected error for unparseable text")
	}
	if _, err := parseTime(42); err == nil {
		t.Error("expected error for unexpected type")
	}
}
