package stores

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// PostgreSQL driver
	_ "github.com/lib/pq"
	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

const defaultListLimit = 100

// Config holds store configuration.
type Config struct {
	// Driver is DriverSQLite or DriverPostgres.
	Driver string

	// DSN is a file path (or ":memory:") for SQLite and a connection URL
	// for PostgreSQL.
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLStore implements Store on database/sql for SQLite and PostgreSQL.
type SQLStore struct {
	db  *sql.DB
	cfg Config
}

var _ Store = (*SQLStore)(nil)

// New creates a store. Call Init and Migrate before use, or use Open.
func New(cfg Config) (*SQLStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}

	// Set defaults
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 10
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 5
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}
	// Every connection to :memory: is a separate database.
	if cfg.Driver == DriverSQLite && isMemory(cfg.DSN) {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
	}

	return &SQLStore{cfg: cfg}, nil
}

// Open creates, initializes and migrates a store.
func Open(ctx context.Context, cfg Config) (*SQLStore, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Driver returns the configured driver name.
func (s *SQLStore) Driver() string {
	return s.cfg.Driver
}

// Init opens the connection pool. SQLite databases run in WAL mode with
// foreign keys enforced.
func (s *SQLStore) Init(ctx context.Context) error {
	dsn := s.cfg.DSN
	if s.cfg.Driver == DriverSQLite {
		if !isMemory(dsn) && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(s.cfg.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate runs the embedded migrations for the configured driver.
func (s *SQLStore) Migrate(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+s.cfg.Driver)
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	var driver database.Driver
	switch s.cfg.Driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(s.db, &postgres.Config{})
	default:
		driver, err = sqlite3.WithInstance(s.db, &sqlite3.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, s.cfg.Driver, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SaveAnalysis writes the analysis row and its diagnostics atomically.
func (s *SQLStore) SaveAnalysis(ctx context.Context, a *Analysis, diags []*Diagnostic) error {
	if a.ID == "" {
		return fmt.Errorf("analysis id is required")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO analyses (id, method, resources, diagnostics, mandatory, started_at, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`),
		a.ID,
		a.Method,
		a.Resources,
		a.Diagnostics,
		a.Mandatory,
		a.StartedAt.UTC(),
		a.Duration.Milliseconds(),
		a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	insert := s.rebind(`
		INSERT INTO diagnostics (
			analysis_id, ordinal, policy_name, pack_name, pack_version,
			enforcement_level, urn, message, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for i, d := range diags {
		tags, err := json.Marshal(nonNil(d.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		_, err = tx.ExecContext(ctx, insert,
			a.ID,
			i,
			d.PolicyName,
			d.PackName,
			d.PackVersion,
			d.EnforcementLevel,
			d.URN,
			d.Message,
			string(tags),
		)
		if err != nil {
			return fmt.Errorf("failed to insert diagnostic %d: %w", i, err)
		}
		d.AnalysisID = a.ID
		d.Ordinal = i
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID
func (s *SQLStore) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, method, resources, diagnostics, mandatory, started_at, duration_ms, created_at
		FROM analyses
		WHERE id = ?
	`), id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses lists analyses, newest first.
func (s *SQLStore) ListAnalyses(ctx context.Context, opts ListOptions) ([]*Analysis, error) {
	var where []string
	var args []any

	if opts.Method != "" {
		where = append(where, "method = ?")
		args = append(args, opts.Method)
	}
	if opts.MandatoryOnly {
		where = append(where, "mandatory > 0")
	}
	if !opts.Since.IsZero() {
		where = append(where, "started_at >= ?")
		args = append(args, opts.Since.UTC())
	}

	query := `SELECT id, method, resources, diagnostics, mandatory, started_at, duration_ms, created_at FROM analyses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at DESC, id LIMIT ? OFFSET ?"

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []*Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return analyses, nil
}

// ListDiagnostics returns the diagnostics of an analysis in report order.
func (s *SQLStore) ListDiagnostics(ctx context.Context, analysisID string) ([]*Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, analysis_id, ordinal, policy_name, pack_name, pack_version,
			   enforcement_level, urn, message, tags
		FROM diagnostics
		WHERE analysis_id = ?
		ORDER BY ordinal ASC
	`), analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics: %w", err)
	}
	defer rows.Close()

	diags := []*Diagnostic{}
	for rows.Next() {
		d := &Diagnostic{}
		var tags string
		err := rows.Scan(
			&d.ID,
			&d.AnalysisID,
			&d.Ordinal,
			&d.PolicyName,
			&d.PackName,
			&d.PackVersion,
			&d.EnforcementLevel,
			&d.URN,
			&d.Message,
			&tags,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of diagnostic %d: %w", d.ID, err)
		}
		diags = append(diags, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagnostics: %w", err)
	}

	return diags, nil
}

// PolicyStats aggregates findings per policy, most frequent first.
func (s *SQLStore) PolicyStats(ctx context.Context, since time.Time) ([]*PolicyStat, error) {
	query := `
		SELECT d.policy_name, d.pack_name, d.enforcement_level, COUNT(*), MAX(a.started_at)
		FROM diagnostics d
		JOIN analyses a ON a.id = d.analysis_id
		WHERE a.started_at >= ?
		GROUP BY d.policy_name, d.pack_name, d.enforcement_level
		ORDER BY COUNT(*) DESC, d.policy_name ASC
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query policy stats: %w", err)
	}
	defer rows.Close()

	stats := []*PolicyStat{}
	for rows.Next() {
		st := &PolicyStat{}
		var lastSeen any
		if err := rows.Scan(&st.PolicyName, &st.PackName, &st.EnforcementLevel, &st.Count, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan policy stat: %w", err)
		}
		if st.LastSeen, err = parseTime(lastSeen); err != nil {
			return nil, fmt.Errorf("failed to parse last seen time: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating policy stats: %w", err)
	}

	return stats, nil
}

// Prune deletes analyses started before the cutoff. Diagnostics cascade.
func (s *SQLStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM analyses WHERE started_at < ?`), before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune analyses: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// HealthCheck verifies the database is reachable.
func (s *SQLStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*Analysis, error) {
	a := &Analysis{}
	var durationMS int64
	err := row.Scan(
		&a.ID,
		&a.Method,
		&a.Resources,
		&a.Diagnostics,
		&a.Mandatory,
		&a.StartedAt,
		&durationMS,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Duration = time.Duration(durationMS) * time.Millisecond
	return a, nil
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.cfg.Driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLite returns untyped aggregates as text.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
}

func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case nil:
		return time.Time{}, nil
	case []byte:
		return parseTime(string(t))
	case string:
		for _, layout := range sqliteTimeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized time %q", t)
	default:
		return time.Time{}, fmt.Errorf("unexpected time type %T", v)
	}
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate&_time_format=sqlite"
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
