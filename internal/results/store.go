// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results persists experiment evaluations in a SQLite database
// and exports them for comparison across runs.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slicebench/pkg/types"
)

const dbFile = "slicebench.db"

// Store manages the results SQLite database. The runs table is
// append-only: re-running a stage adds a new row.
type Store struct {
	db         *sql.DB
	resultsDir string
	maxResults int
}

// NewStore opens or creates the results database at
// resultsDir/slicebench.db, creating the schema if needed.
func NewStore(cfg types.ResultsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ResultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ResultsDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		resultsDir: cfg.ResultsDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			stage TEXT NOT NULL,
			model TEXT NOT NULL,
			params TEXT,
			train_rmse REAL NOT NULL,
			test_rmse REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts an evaluation and returns its run ID.
func (s *Store) Record(ctx context.Context, eval types.Evaluation) (int64, error) {
	if eval.Stage == "" || eval.Model == "" {
		return 0, fmt.Errorf("evaluation needs both stage and model names")
	}

	paramsJSON, err := json.Marshal(eval.Params)
	if err != nil {
		return 0, fmt.Errorf("marshaling params: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, stage, model, params, train_rmse, test_rmse)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		eval.Stage, eval.Model, string(paramsJSON), eval.TrainRMSE, eval.TestRMSE,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// QueryOptions filters and limits listed runs.
type QueryOptions struct {
	// Stage restricts results to one stage when non-empty.
	Stage string

	// Limit caps the number of rows; 0 uses the store default.
	Limit int
}

// List returns runs ordered by test RMSE, best first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.RunRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT id, created_at, stage, model, params, train_rmse, test_rmse FROM runs`
	var args []any
	if opts.Stage != "" {
		query += ` WHERE stage = ?`
		args = append(args, opts.Stage)
	}
	query += ` ORDER BY test_rmse ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var (
			rec        types.RunRecord
			createdAt  string
			paramsJSON sql.NullString
		)
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Stage, &rec.Model, &paramsJSON, &rec.TrainRMSE, &rec.TestRMSE); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			rec.CreatedAt = t
		}
		if paramsJSON.Valid && paramsJSON.String != "" {
			if err := json.Unmarshal([]byte(paramsJSON.String), &rec.Params); err != nil {
				return nil, fmt.Errorf("parsing params for run %d: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportYAML writes the selected runs to resultsDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	records, err := s.List(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(filepath.Join(s.resultsDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the selected runs to resultsDir/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	records, err := s.List(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(filepath.Join(s.resultsDir, "export.json"), data, 0o644)
}
