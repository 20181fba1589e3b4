package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/db"
	"github.com/alexanderramin/blueprint/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) GetPeriod(ctx context.Context) (*domain.ReportingPeriod, error) {
	query := `SELECT period_month, period_year FROM settings WHERE id = 'default'`
	var p domain.ReportingPeriod
	if err := r.db.QueryRowContext(ctx, query).Scan(&p.Month, &p.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reporting period: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	return &p, nil
}

func (r *SQLiteSettingsRepo) SetPeriod(ctx context.Context, p domain.ReportingPeriod) error {
	query := `INSERT OR REPLACE INTO settings (id, period_month, period_year) VALUES ('default', ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, p.Month, p.Year); err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
