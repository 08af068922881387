// Package history provides SQLite-based storage for past scan reports.
//
// Every completed scan is saved so later runs can be compared against the
// device's track record; the `diskscan history` command lists them.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/diskscan/internal/model"
)

// DB provides SQLite-based storage for scan reports.
//
// Design decision: Reports are stored as a JSON blob plus a handful of
// indexed columns (device, timestamp, conclusion, error count). The blob
// preserves everything for later inspection; the columns are what the
// listing queries actually need.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Run is one row of the scan history listing.
type Run struct {
	// ID is the database row ID.
	ID int64

	// DevicePath is the scanned device.
	DevicePath string

	// ScannedAt is when the scan started.
	ScannedAt time.Time

	// Conclusion is the health verdict of the run.
	Conclusion model.Conclusion

	// NumErrors is the number of unreadable scan units.
	NumErrors uint64
}

// Open opens or creates the history database under dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, "diskscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single pooled connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &DB{db: db, dbPath: dbPath}

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

// Close closes the database connection.
func (hdb *DB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *DB) createTables() error {
	schema := `
	-- Scan reports store complete scan results as JSON plus indexed columns
	CREATE TABLE IF NOT EXISTS scan_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_path TEXT NOT NULL,
		scanned_at DATETIME NOT NULL,
		conclusion TEXT NOT NULL,
		num_errors INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_device ON scan_reports(device_path);
	CREATE INDEX IF NOT EXISTS idx_reports_scanned_at ON scan_reports(scanned_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport persists one scan report.
func (hdb *DB) SaveReport(ctx context.Context, report *model.ScanReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO scan_reports (device_path, scanned_at, conclusion, num_errors, report_json)
	VALUES (?, ?, ?, ?, ?)
	`
	result, err := hdb.db.ExecContext(ctx, query,
		report.DevicePath,
		report.StartedAt.UTC().Format(time.RFC3339),
		report.Conclusion.Token(),
		report.NumErrors,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan report: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns the most recent runs for a device, newest first.
// A limit of 0 means no limit.
func (hdb *DB) ListRuns(ctx context.Context, devicePath string, limit int) ([]Run, error) {
	query := `
	SELECT id, device_path, scanned_at, conclusion, num_errors
	FROM scan_reports
	WHERE device_path = ?
	ORDER BY scanned_at DESC, id DESC
	`
	args := []any{devicePath}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var scannedAt, conclusion string
		if err := rows.Scan(&run.ID, &run.DevicePath, &scannedAt, &conclusion, &run.NumErrors); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		run.ScannedAt = parseTimestamp(scannedAt)
		_ = run.Conclusion.UnmarshalText([]byte(conclusion)) //nolint:errcheck // Never fails
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastRun returns the most recent run for a device, or nil when the device
// has never been scanned.
func (hdb *DB) LastRun(ctx context.Context, devicePath string) (*Run, error) {
	runs, err := hdb.ListRuns(ctx, devicePath, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// GetReport loads the full report stored under a run ID.
func (hdb *DB) GetReport(ctx context.Context, id int64) (*model.ScanReport, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx,
		"SELECT report_json FROM scan_reports WHERE id = ?", id,
	).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no scan report with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to decode scan report: %w", err)
	}
	return &report, nil
}

// parseTimestamp handles the timestamp formats SQLite may return.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
