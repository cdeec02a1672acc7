// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/resumelens/resumelens/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		resume_name TEXT NOT NULL,
		previous_id TEXT,
		result TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (previous_id) REFERENCES analyses(id)
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	CREATE INDEX IF NOT EXISTS idx_analyses_resume_name ON analyses(resume_name);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveAnalysis inserts an analysis record. The result is stored as JSON so
// the schema survives contract additions.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	rec.CreatedAt = time.Now()

	var previous sql.NullString
	if rec.PreviousID != "" {
		previous = sql.NullString{String: rec.PreviousID, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, resume_name, previous_id, result, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.ResumeName, previous, string(resultJSON), rec.CreatedAt,
	)
	return err
}

// GetAnalysis returns an analysis record by ID.
func (s *SQLiteStorage) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, resume_name, previous_id, result, created_at
		 FROM analyses WHERE id = ?`, id,
	)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListAnalyses returns analysis records, newest first, with offset and limit.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, offset, limit int) ([]*models.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, resume_name, previous_id, result, created_at
		 FROM analyses ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByResumeName returns all analyses for a resume, newest first.
func (s *SQLiteStorage) ListByResumeName(ctx context.Context, name string) ([]*models.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, resume_name, previous_id, result, created_at
		 FROM analyses WHERE resume_name = ? ORDER BY created_at DESC, id`,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// DeleteAnalysis removes an analysis record by ID.
func (s *SQLiteStorage) DeleteAnalysis(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	return err
}

// CountAnalyses returns the number of stored records.
func (s *SQLiteStorage) CountAnalyses(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n)
	return n, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	var previous sql.NullString
	var resultJSON string
	if err := row.Scan(&rec.ID, &rec.ResumeName, &previous, &resultJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if previous.Valid {
		rec.PreviousID = previous.String
	}
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*models.AnalysisRecord, error) {
	var recs []*models.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
