package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-json-experiment/json"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/linux-audit-script/auditreport/internal/model"
)

// FileName is the database file name inside the database directory.
const FileName = "auditreport.db"

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// HistoryDB stores rendered runs in SQLite.
type HistoryDB struct {
	db     *sql.DB
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
// wrapping fs.ErrNotExist is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	mode := "rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		mode = "rwc"
	} else if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?mode="+mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	h := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := h.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return h, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		generated_at TEXT NOT NULL,
		title TEXT NOT NULL,
		format TEXT NOT NULL,
		output TEXT NOT NULL,
		version TEXT,
		sections INTEGER NOT NULL,
		records INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	CREATE TABLE IF NOT EXISTS run_sections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		source TEXT NOT NULL,
		digest TEXT,
		records INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_sections_source ON run_sections(source);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// RunMeta describes how a report was rendered.
type RunMeta struct {
	Format  string
	Output  string
	Version string
}

// Run is a stored run summary.
type Run struct {
	ID          int64
	Timestamp   time.Time
	GeneratedAt time.Time
	Title       string
	Format      string
	Output      string
	Version     string
	Sections    int
	Records     int
	Skipped     int
}

// RunSection is one stored section of a run.
type RunSection struct {
	Position int
	Title    string
	Source   string
	Digest   string
	Records  int
	Skipped  int
}

// SaveRun stores report and its sections in one transaction and returns
// the new run ID. digests maps section sources to input file digests;
// sources without a digest are stored with an empty one.
func (h *HistoryDB) SaveRun(ctx context.Context, meta RunMeta, report *model.Report, digests map[string]string) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (generated_at, title, format, output, version, sections, records, skipped, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.Title,
		meta.Format,
		meta.Output,
		meta.Version,
		len(report.Sections),
		report.RecordCount(),
		report.SkippedCount(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO run_sections (run_id, position, title, source, digest, records, skipped)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare section insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range report.Sections {
		if _, err := stmt.ExecContext(ctx, runID, i, s.Title, s.Source, digests[s.Source], s.RecordCount(), s.Skipped); err != nil {
			return 0, fmt.Errorf("failed to insert section %q: %w", s.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (h *HistoryDB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := h.db.QueryContext(ctx, `
	SELECT id, timestamp, generated_at, title, format, output, COALESCE(version, ''), sections, records, skipped
	FROM runs
	ORDER BY id DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var timestamp, generated string
		if err := rows.Scan(&r.ID, &timestamp, &generated, &r.Title, &r.Format, &r.Output, &r.Version, &r.Sections, &r.Records, &r.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Timestamp = parseTimestamp(timestamp)
		r.GeneratedAt = parseTimestamp(generated)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSections returns the sections of a run in report order.
func (h *HistoryDB) RunSections(ctx context.Context, runID int64) ([]RunSection, error) {
	rows, err := h.db.QueryContext(ctx, `
	SELECT position, title, source, COALESCE(digest, ''), records, skipped
	FROM run_sections
	WHERE run_id = ?
	ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []RunSection
	for rows.Next() {
		var s RunSection
		if err := rows.Scan(&s.Position, &s.Title, &s.Source, &s.Digest, &s.Records, &s.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// RunReport returns the report stored with a run.
func (h *HistoryDB) RunReport(ctx context.Context, runID int64) (*model.Report, error) {
	var data string
	err := h.db.QueryRowContext(ctx, "SELECT report_json FROM runs WHERE id = ?", runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to decode stored report: %w", err)
	}
	return &report, nil
}

// LatestDigest returns the digest recorded for source by the most recent
// run that included it, or "" when no run did.
func (h *HistoryDB) LatestDigest(ctx context.Context, source string) (string, error) {
	var digest string
	err := h.db.QueryRowContext(ctx, `
	SELECT COALESCE(digest, '')
	FROM run_sections
	WHERE source = ?
	ORDER BY run_id DESC
	LIMIT 1
	`, source).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query digest: %w", err)
	}
	return digest, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses s with the first matching format, or returns the
// zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
