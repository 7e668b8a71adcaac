package dbx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rizesql/dbx"
	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/assert"
)

func TestBatchCommits(t *testing.T) {
	conn := &driver.TestConn{}

	got, err := dbx.Batch(conn, func(tx driver.Transaction) (int, error) {
		err := dbx.Exec(dbx.NewCommandTx(tx, "INSERT INTO t(x) VALUES(1)"))
		return 99, err
	})
	assert.Err(t, err, nil)
	assert.Equal(t, got, 99)

	tx := conn.Txs[0]
	assert.True(t, tx.Committed)
	assert.True(t, !tx.RolledBack)

	// The command created inside the batch carried the transaction.
	assert.Equal(t, conn.Commands[0].Tx, driver.Transaction(tx))
}

func TestBatchRollsBackAndReturnsOriginalFailure(t *testing.T) {
	errWork := errors.New("unique constraint failed")
	conn := &driver.TestConn{}

	_, err := dbx.Batch(conn, func(tx driver.Transaction) (int, error) {
		return 0, errWork
	})
	assert.Err(t, err, errWork)

	tx := conn.Txs[0]
	assert.True(t, tx.RolledBack)
	assert.True(t, !tx.Committed)
}

func TestBatchRollbackFailureDoesNotMaskOriginal(t *testing.T) {
	errWork := errors.New("boom")
	conn := &driver.TestConn{}

	_, err := dbx.Batch(conn, func(tx driver.Transaction) (int, error) {
		tx.(*driver.TestTx).RollbackErr = errors.New("rollback failed")
		return 0, errWork
	})
	assert.Err(t, err, errWork)
}

func TestBatchOpenFailure(t *testing.T) {
	errOpen := errors.New("connection refused")
	conn := &driver.TestConn{OpenErr: errOpen}

	_, err := dbx.Batch(conn, func(tx driver.Transaction) (int, error) {
		t.Fatal("work ran despite open failure")
		return 0, nil
	})
	assert.Err(t, err, errOpen)
	assert.Equal(t, len(conn.Txs), 0)
}

func TestBatchCommitFailure(t *testing.T) {
	errCommit := errors.New("commit failed")
	conn := &driver.TestConn{}

	_, err := dbx.Batch(conn, func(tx driver.Transaction) (int, error) {
		tx.(*driver.TestTx).CommitErr = errCommit
		return 0, nil
	})
	assert.Err(t, err, errCommit)
}

func TestBatchContext(t *testing.T) {
	conn := &driver.TestConn{}

	got, err := dbx.BatchContext(t.Context(), conn, func(ctx context.Context, tx driver.Transaction) (string, error) {
		err := dbx.ExecContext(ctx, dbx.NewCommandTx(tx, "INSERT INTO t(x) VALUES(1)"))
		return "done", err
	})
	assert.Err(t, err, nil)
	assert.Equal(t, got, "done")
	assert.True(t, conn.Txs[0].Committed)
}

func TestBatchContextCanceled(t *testing.T) {
	conn := &driver.TestConn{}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := dbx.BatchContext(ctx, conn, func(ctx context.Context, tx driver.Transaction) (int, error) {
		t.Fatal("work ran despite cancellation")
		return 0, nil
	})
	assert.Err(t, err, context.Canceled)
	assert.Equal(t, conn.OpenCalls, 0)
}
