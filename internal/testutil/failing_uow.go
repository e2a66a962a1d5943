package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/alexanderramin/brdtrack/internal/db"
	"github.com/alexanderramin/brdtrack/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ErrInjected is returned by the failure-injecting helpers when no error is
// configured.
var ErrInjected = errors.New("injected failure")

// FailOnNthExecUoW injects Err on the FailOn-th ExecContext call inside a
// transaction. Calls are counted from 1; reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: orInjected(u.Err)}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// FailingSaver is a workbook saver that fails on the listed call numbers
// (counted from 1) and writes normally otherwise.
type FailingSaver struct {
	FailOn []int32
	Err    error

	calls atomic.Int32
}

// Save satisfies repository.Saver.
func (s *FailingSaver) Save(f *excelize.File, path string) error {
	n := s.calls.Add(1)
	if slices.Contains(s.FailOn, n) {
		return orInjected(s.Err)
	}
	return repository.SaveAs(f, path)
}

// Calls reports how many saves were attempted.
func (s *FailingSaver) Calls() int {
	return int(s.calls.Load())
}

func orInjected(err error) error {
	if err == nil {
		return ErrInjected
	}
	return err
}
