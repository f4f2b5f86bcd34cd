package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pwaffinity/internal/model"
)

// FileName is the database file name inside the data directory.
const FileName = "pwaffinity.db"

// ErrDatabaseNotFound is returned by Open when the database does not exist
// and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("history database not found")

// timestampLayout is how run timestamps are stored.
const timestampLayout = "2006-01-02 15:04:05"

// HistoryDB stores past check runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// wrapping ErrDatabaseNotFound is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per check run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		centers_source TEXT NOT NULL,
		centers_digest TEXT NOT NULL,
		center_count INTEGER NOT NULL,
		analysis_count INTEGER NOT NULL,
		min_distance REAL,
		max_distance REAL,
		mean_distance REAL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(centers_digest);

	-- One row per analyzed password, without the password
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		length INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		distance REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_run ON analyses(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored check run.
type RunRecord struct {
	ID            int64
	Timestamp     time.Time
	CentersSource string
	CentersDigest string
	CenterCount   int
	Summary       model.Summary
}

// AnalysisRecord is a stored analysis. It carries no password.
type AnalysisRecord struct {
	Position    int
	Length      int
	Fingerprint string
	Distance    float64
}

// SaveReport stores report as one run in a single transaction and returns
// the run ID.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.Report) (id int64, err error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	s := report.Summary()
	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (timestamp, centers_source, centers_digest, center_count,
		analysis_count, min_distance, max_distance, mean_distance)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.GeneratedAt.UTC().Format(timestampLayout),
		report.CentersSource,
		report.CentersDigest,
		report.CenterCount,
		s.Count, s.Min, s.Max, s.Mean,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO analyses (run_id, position, length, fingerprint, distance)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare analysis insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range report.Analyses {
		if _, err = stmt.ExecContext(ctx, id, i+1, a.Length, a.Fingerprint, a.Distance); err != nil {
			return 0, fmt.Errorf("failed to insert analysis: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListHistory returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (hdb *HistoryDB) ListHistory(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, timestamp, centers_source, centers_digest, center_count,
		analysis_count, min_distance, max_distance, mean_distance
	FROM runs
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var ts string
		if err := rows.Scan(
			&r.ID, &ts, &r.CentersSource, &r.CentersDigest, &r.CenterCount,
			&r.Summary.Count, &r.Summary.Min, &r.Summary.Max, &r.Summary.Mean,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Timestamp = parseTimestamp(ts)
		records = append(records, r)
	}

	return records, rows.Err()
}

// RunAnalyses returns the analyses stored for a run in input order.
func (hdb *HistoryDB) RunAnalyses(ctx context.Context, runID int64) ([]AnalysisRecord, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT position, length, fingerprint, distance
	FROM analyses
	WHERE run_id = ?
	ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var a AnalysisRecord
		if err := rows.Scan(&a.Position, &a.Length, &a.Fingerprint, &a.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// CountByCentersDigest returns how many passwords were analyzed against the
// reference set with the given digest.
func (hdb *HistoryDB) CountByCentersDigest(ctx context.Context, digest string) (int, error) {
	var n int
	err := hdb.db.QueryRowContext(ctx, `
	SELECT COALESCE(SUM(analysis_count), 0) FROM runs WHERE centers_digest = ?
	`, digest).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,           // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// It returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
