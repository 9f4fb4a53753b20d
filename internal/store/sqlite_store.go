package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/quantum-forge/internal/types"
)

// SQLiteStore persists saves to a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS saves (
		save_id TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

// SaveGame upserts a save.
func (s *SQLiteStore) SaveGame(ctx context.Context, record *types.SaveRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (save_id, version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(save_id) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		record.ID, record.Version, string(record.Data), record.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store save: %w", err)
	}
	return nil
}

// LoadGame retrieves a save by ID.
func (s *SQLiteStore) LoadGame(ctx context.Context, id string) (*types.SaveRecord, error) {
	var (
		record    types.SaveRecord
		data      string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT save_id, version, data, updated_at FROM saves WHERE save_id = ?`, id,
	).Scan(&record.ID, &record.Version, &data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("failed to get save: %w", err)
	}

	record.Data = []byte(data)
	record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &record, nil
}

// DeleteGame removes a save.
func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE save_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
