package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/repositories"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		variables INTEGER NOT NULL,
		coefficients INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS variables (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		var_name TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS coefficients (
		run_id TEXT NOT NULL,
		row_name TEXT NOT NULL,
		var_name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, row_name, var_name)
	)`,
	`CREATE TABLE IF NOT EXISTS upper_bounds (
		run_id TEXT NOT NULL,
		row_name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, row_name)
	)`,
	`CREATE TABLE IF NOT EXISTS equalities (
		run_id TEXT NOT NULL,
		row_name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, row_name)
	)`,
	`CREATE TABLE IF NOT EXISTS objective (
		run_id TEXT NOT NULL,
		var_name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, var_name)
	)`,
}

// ModelStore exports assembled models to SQLite as sparse key-value tables.
// Decimal values are stored as text so they round-trip exactly.
type ModelStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Verify interface compliance
var _ repositories.ModelRepository = (*ModelStore)(nil)

// NewModelStore opens (creating if needed) the database at path
func NewModelStore(path string) (*ModelStore, error) {
	if path == "" {
		path = "corona-lp.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &ModelStore{db: db, path: path, now: time.Now}, nil
}

// SaveModel writes every structure of the model under runID in one transaction
func (s *ModelStore) SaveModel(ctx context.Context, runID string, model *entities.Model) (retErr error) {
	if runID == "" {
		return fmt.Errorf("run id cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs(run_id, created_at, variables, coefficients) VALUES(?,?,?,?)`,
		runID, s.now().UTC().Format(time.RFC3339Nano), len(model.Variables), model.Coefficients.Len()); err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	for i, v := range model.Variables {
		if _, err := tx.ExecContext(ctx, `INSERT INTO variables(run_id, position, var_name) VALUES(?,?,?)`, runID, i, v.String()); err != nil {
			return fmt.Errorf("insert variable %s: %w", v, err)
		}
	}

	for _, entry := range model.Coefficients.Entries() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO coefficients(run_id, row_name, var_name, value) VALUES(?,?,?,?)`,
			runID, entry.Row.String(), entry.Var.String(), entry.Coefficient.String()); err != nil {
			return fmt.Errorf("insert coefficient (%s, %s): %w", entry.Var, entry.Row, err)
		}
	}

	for _, row := range model.Rows() {
		value, equality, _ := model.RHS(row)
		table := "upper_bounds"
		if equality {
			table = "equalities"
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+`(run_id, row_name, value) VALUES(?,?,?)`,
			runID, row.String(), value.String()); err != nil {
			return fmt.Errorf("insert %s row %s: %w", table, row, err)
		}
	}

	for _, v := range model.ObjectiveTerms() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO objective(run_id, var_name, value) VALUES(?,?,?)`,
			runID, v.String(), model.Objective[v].String()); err != nil {
			return fmt.Errorf("insert objective term %s: %w", v, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadCoefficients returns the stored nonzeros of a run ordered by row, then variable
func (s *ModelStore) LoadCoefficients(ctx context.Context, runID string) ([]repositories.CoefficientRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_name, var_name, value FROM coefficients WHERE run_id = ? ORDER BY row_name, var_name`, runID)
	if err != nil {
		return nil, fmt.Errorf("select coefficients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []repositories.CoefficientRecord
	for rows.Next() {
		var record repositories.CoefficientRecord
		var raw string
		if err := rows.Scan(&record.Row, &record.Var, &raw); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if record.Coefficient, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("decode coefficient (%s, %s): %w", record.Var, record.Row, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ListRuns returns every exported run, oldest first
func (s *ModelStore) ListRuns(ctx context.Context) ([]repositories.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, created_at, variables, coefficients FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []repositories.RunRecord
	for rows.Next() {
		var run repositories.RunRecord
		var created string
		if err := rows.Scan(&run.RunID, &created, &run.Variables, &run.Coefficients); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("decode created_at of %s: %w", run.RunID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database handle
func (s *ModelStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *ModelStore) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *ModelStore) Path() string { return s.path }
