package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/blueprint/internal/db"
	"github.com/alexanderramin/blueprint/internal/domain"
)

// SQLiteBlueprintRepo implements BlueprintRepo using a SQLite database.
type SQLiteBlueprintRepo struct {
	db db.DBTX
}

// NewSQLiteBlueprintRepo creates a new SQLiteBlueprintRepo.
func NewSQLiteBlueprintRepo(conn db.DBTX) *SQLiteBlueprintRepo {
	return &SQLiteBlueprintRepo{db: conn}
}

// Create inserts b at version 1.
func (r *SQLiteBlueprintRepo) Create(ctx context.Context, b *domain.Blueprint) error {
	doc, err := json.Marshal(toBlueprintDoc(b))
	if err != nil {
		return fmt.Errorf("encoding blueprint %s: %w", b.ID, err)
	}
	now := nowUTC()
	query := `INSERT INTO blueprints (id, name, version, document, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, b.ID, b.Name, string(doc), now, formatTime(b.UpdatedAt)); err != nil {
		return fmt.Errorf("inserting blueprint: %w", err)
	}
	b.Version = 1
	return nil
}

func (r *SQLiteBlueprintRepo) Get(ctx context.Context, id string) (*domain.Blueprint, error) {
	query := `SELECT id, name, version, document, updated_at FROM blueprints WHERE id = ?`
	b, err := scanBlueprint(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("blueprint %s: %w", id, ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBlueprintRepo) List(ctx context.Context) ([]*domain.Blueprint, error) {
	query := `SELECT id, name, version, document, updated_at FROM blueprints ORDER BY name, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing blueprints: %w", err)
	}
	defer rows.Close()

	var out []*domain.Blueprint
	for rows.Next() {
		b, err := scanBlueprint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blueprints: %w", err)
	}
	return out, nil
}

func (r *SQLiteBlueprintRepo) Replace(ctx context.Context, b *domain.Blueprint, expectedVersion int) error {
	doc, err := json.Marshal(toBlueprintDoc(b))
	if err != nil {
		return fmt.Errorf("encoding blueprint %s: %w", b.ID, err)
	}
	updatedAt := nowUTC()
	query := `UPDATE blueprints SET name = ?, document = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query, b.Name, string(doc), updatedAt, b.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("replacing blueprint: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return r.missOrConflict(ctx, b.ID, expectedVersion)
	}
	b.Version = expectedVersion + 1
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return nil
}

func (r *SQLiteBlueprintRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blueprints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting blueprint: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("blueprint %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteBlueprintRepo) missOrConflict(ctx context.Context, id string, expected int) error {
	var current int
	err := r.db.QueryRowContext(ctx, `SELECT version FROM blueprints WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("blueprint %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("reading blueprint version: %w", err)
	}
	return fmt.Errorf("blueprint %s is at version %d, expected %d: %w", id, current, expected, ErrVersionConflict)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlueprint(row rowScanner) (*domain.Blueprint, error) {
	var b domain.Blueprint
	var doc, updatedAt string
	if err := row.Scan(&b.ID, &b.Name, &b.Version, &doc, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning blueprint: %w", err)
	}
	var d blueprintDoc
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, fmt.Errorf("decoding blueprint %s: %w", b.ID, err)
	}
	d.apply(&b)
	t, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt = t
	return &b, nil
}
