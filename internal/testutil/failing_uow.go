package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/blueprint/internal/db"
)

// FailingWriteUoW runs the callback in a real transaction but makes the
// FailAt-th write (1-based) return Err, so multi-statement writes can be
// checked for rollback. Reads are never intercepted.
type FailingWriteUoW struct {
	DB     *sql.DB
	FailAt int32
	Err    error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	conn := &failingWrites{DBTX: tx, failAt: u.FailAt, err: u.Err}
	if err := fn(ctx, conn); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	writes atomic.Int32
	failAt int32
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failAt {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
