package cassandra

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/quantum-forge/internal/store"
	"github.com/quantum-forge/internal/types"
	"github.com/quantum-forge/pkg/logger"
)

// Repository implements store.Store using Cassandra
type Repository struct {
	client  *Client
	logger  *logger.Logger
	timeout time.Duration
}

var _ store.Store = (*Repository)(nil)

// NewRepository creates a new Cassandra-backed save store
func NewRepository(client *Client, log *logger.Logger, timeout time.Duration) *Repository {
	return &Repository{
		client:  client,
		logger:  log,
		timeout: timeout,
	}
}

// queryContext applies the configured timeout when ctx carries no deadline.
func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	queryCtx, cancel := ctx, context.CancelFunc(func() {})
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		queryCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}

	select {
	case <-queryCtx.Done():
		cancel()
		return nil, nil, fmt.Errorf("context cancelled: %w", queryCtx.Err())
	default:
	}
	return queryCtx, cancel, nil
}

// SaveGame upserts a save. Cassandra INSERT is already last-write-wins.
func (r *Repository) SaveGame(ctx context.Context, record *types.SaveRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.saves (save_id, version, data, updated_at)
		VALUES (?, ?, ?, ?)`, r.client.Keyspace())

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	err = r.client.Session().Query(query,
		record.ID,
		record.Version,
		string(record.Data),
		record.UpdatedAt,
	).WithContext(queryCtx).Exec()
	if err != nil {
		r.logger.Error("Failed to store save in Cassandra",
			logger.F("save_id", record.ID),
			logger.Err(err))
		return fmt.Errorf("failed to store save: %w", err)
	}

	r.logger.Debug("Save stored", logger.F("save_id", record.ID))
	return nil
}

// LoadGame retrieves a save by ID
func (r *Repository) LoadGame(ctx context.Context, id string) (*types.SaveRecord, error) {
	query := fmt.Sprintf(`
		SELECT save_id, version, data, updated_at
		FROM %s.saves
		WHERE save_id = ?`, r.client.Keyspace())

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var (
		record types.SaveRecord
		data   string
	)
	err = r.client.Session().Query(query, id).WithContext(queryCtx).Scan(
		&record.ID,
		&record.Version,
		&data,
		&record.UpdatedAt,
	)
	if err != nil {
		if err == gocql.ErrNotFound {
			return nil, store.ErrSaveNotFound
		}
		r.logger.Error("Failed to get save from Cassandra",
			logger.F("save_id", id),
			logger.Err(err))
		return nil, fmt.Errorf("failed to get save: %w", err)
	}

	record.Data = []byte(data)
	return &record, nil
}

// DeleteGame removes a save
func (r *Repository) DeleteGame(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s.saves WHERE save_id = ?`, r.client.Keyspace())

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := r.client.Session().Query(query, id).WithContext(queryCtx).Exec(); err != nil {
		r.logger.Error("Failed to delete save from Cassandra",
			logger.F("save_id", id),
			logger.Err(err))
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}
