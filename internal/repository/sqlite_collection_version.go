package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/db"
)

// SQLiteCollectionVersionRepo keeps per-collection change counters in the
// collection_versions table.
type SQLiteCollectionVersionRepo struct {
	db db.DBTX
}

// NewSQLiteCollectionVersionRepo creates a new SQLiteCollectionVersionRepo.
func NewSQLiteCollectionVersionRepo(conn db.DBTX) *SQLiteCollectionVersionRepo {
	return &SQLiteCollectionVersionRepo{db: conn}
}

// Current returns the collection version, zero when it was never bumped.
func (r *SQLiteCollectionVersionRepo) Current(ctx context.Context, collection string) (int, error) {
	var v int
	err := r.db.QueryRowContext(ctx, `SELECT version FROM collection_versions WHERE collection = ?`, collection).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s version: %w", collection, err)
	}
	return v, nil
}

// Bump increments the collection version and returns the new value.
// The increment is a single statement, so it is atomic under concurrent writers.
func (r *SQLiteCollectionVersionRepo) Bump(ctx context.Context, collection string) (int, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO collection_versions (collection, version) VALUES (?, 0)`, collection); err != nil {
		return 0, fmt.Errorf("seeding %s version: %w", collection, err)
	}

	var next int
	query := `UPDATE collection_versions
		SET version = version + 1
		WHERE collection = ?
		RETURNING version`
	if err := r.db.QueryRowContext(ctx, query, collection).Scan(&next); err != nil {
		return 0, fmt.Errorf("bumping %s version: %w", collection, err)
	}
	return next, nil
}
