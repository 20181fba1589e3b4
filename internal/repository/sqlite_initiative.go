package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/db"
	"github.com/alexanderramin/blueprint/internal/domain"
)

// SQLiteInitiativeRepo implements InitiativeRepo using a SQLite database.
type SQLiteInitiativeRepo struct {
	db db.DBTX
}

// NewSQLiteInitiativeRepo creates a new SQLiteInitiativeRepo.
func NewSQLiteInitiativeRepo(conn db.DBTX) *SQLiteInitiativeRepo {
	return &SQLiteInitiativeRepo{db: conn}
}

func (r *SQLiteInitiativeRepo) Upsert(ctx context.Context, i *domain.Initiative, expectedVersion int) error {
	doc, err := json.Marshal(toInitiativeDoc(i))
	if err != nil {
		return fmt.Errorf("encoding initiative %s: %w", i.ID, err)
	}
	now := nowUTC()

	if expectedVersion == 0 {
		query := `INSERT INTO initiatives (id, name, version, document, created_at, updated_at)
			VALUES (?, ?, 1, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`
		res, err := r.db.ExecContext(ctx, query, i.ID, i.Name, string(doc), now, now)
		if err != nil {
			return fmt.Errorf("inserting initiative: %w", err)
		}
		ok, err := rowsAffected(res)
		if err != nil {
			return err
		}
		if !ok {
			return r.missOrConflict(ctx, i.ID, expectedVersion)
		}
		i.Version = 1
		return nil
	}

	query := `UPDATE initiatives SET name = ?, document = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query, i.Name, string(doc), now, i.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("updating initiative: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return r.missOrConflict(ctx, i.ID, expectedVersion)
	}
	i.Version = expectedVersion + 1
	return nil
}

func (r *SQLiteInitiativeRepo) Get(ctx context.Context, id string) (*domain.Initiative, error) {
	query := `SELECT id, name, version, document, updated_at FROM initiatives WHERE id = ?`
	i, err := scanInitiative(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("initiative %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// List returns every initiative ordered by name then ID.
func (r *SQLiteInitiativeRepo) List(ctx context.Context) ([]domain.Initiative, error) {
	query := `SELECT id, name, version, document, updated_at FROM initiatives ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing initiatives: %w", err)
	}
	defer rows.Close()

	var out []domain.Initiative
	for rows.Next() {
		i, err := scanInitiative(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating initiatives: %w", err)
	}
	return out, nil
}

func (r *SQLiteInitiativeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM initiatives WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting initiative: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("initiative %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteInitiativeRepo) missOrConflict(ctx context.Context, id string, expected int) error {
	var current int
	err := r.db.QueryRowContext(ctx, `SELECT version FROM initiatives WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("initiative %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("reading initiative version: %w", err)
	}
	return fmt.Errorf("initiative %s is at version %d, expected %d: %w", id, current, expected, ErrVersionConflict)
}

func scanInitiative(row rowScanner) (domain.Initiative, error) {
	var i domain.Initiative
	var doc, updatedAt string
	if err := row.Scan(&i.ID, &i.Name, &i.Version, &doc, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return i, err
		}
		return i, fmt.Errorf("scanning initiative: %w", err)
	}
	var d initiativeDoc
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return i, fmt.Errorf("decoding initiative %s: %w", i.ID, err)
	}
	d.apply(&i)
	t, err := parseTime(updatedAt)
	if err != nil {
		return i, err
	}
	i.UpdatedAt = t
	return i, nil
}
