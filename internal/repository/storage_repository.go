package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikolayk812/morpho-cart/internal/db"
	"github.com/nikolayk812/morpho-cart/internal/port"
)

type storageRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

// NewStorage keeps entries in the storage_entries table.
func NewStorage(pool *pgxpool.Pool) port.Storage {
	return &storageRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewStorageWithTx(tx pgx.Tx) port.Storage {
	return &storageRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *storageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	entry, err := r.q.GetEntry(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetEntry: %w", err)
	}

	return entry.Value, true, nil
}

func (r *storageRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.UpsertEntry(ctx, db.UpsertEntryParams{Key: key, Value: value}); err != nil {
			return struct{}{}, fmt.Errorf("q.UpsertEntry: %w", err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *storageRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := r.q.DeleteEntry(ctx, key); err != nil {
		return fmt.Errorf("q.DeleteEntry: %w", err)
	}

	return nil
}
