package ingest

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/db"
)

func TestBatchWriterTransactions(t *testing.T) {
	conn := setupDB(t)
	fileID, err := db.CreateOrGetSourceFile(conn, "batch.export.CSV", "event")
	require.NoError(t, err)

	bw := NewBatchWriter(conn, 2, 0)
	for _, idx := range []int{0, 1} {
		require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			return db.UpdateFileProgress(tx, fileID, idx)
		}))
	}

	done := make(chan error, 1)
	go func() { done <- bw.Close() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for batch commit")
	}

	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress)
	assert.Equal(t, 2, bw.Committed())
	assert.ErrorIs(t, bw.Close(), ErrBatchWriterClosed)
	assert.ErrorIs(t, bw.Submit(func(context.Context, *sql.Tx) error { return nil }), ErrBatchWriterClosed)
}

func TestBatchWriterRollback(t *testing.T) {
	conn := setupDB(t)
	fileID, err := db.CreateOrGetSourceFile(conn, "rollback.export.CSV", "event")
	require.NoError(t, err)

	bw := NewBatchWriter(conn, 2, 0)
	errCh := make(chan error, 1)
	bw.OnError = func(e error) { errCh <- e }

	// One failing write rolls back the whole batch.
	require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		return db.UpdateFileProgress(tx, fileID, 7)
	}))
	require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		return errors.New("intentional error")
	}))

	err = bw.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intentional error")
	select {
	case e := <-errCh:
		assert.Error(t, e)
	default:
		t.Fatal("expected OnError to be called")
	}

	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, -1, progress)
	assert.Zero(t, bw.Committed())
}

func TestBatchWriterFlushesBySize(t *testing.T) {
	bw := NewBatchWriter(nil, 5, 0)
	var mu sync.Mutex
	called := 0
	for i := 0; i < 12; i++ {
		require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			mu.Lock()
			called++
			mu.Unlock()
			return nil
		}))
	}
	require.NoError(t, bw.Close())
	assert.Equal(t, 12, called)
	assert.Equal(t, 12, bw.Committed())
}

func TestBatchWriterFlushesOnInterval(t *testing.T) {
	bw := NewBatchWriter(nil, 10, 20*time.Millisecond)
	flushed := make(chan struct{})
	require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		close(flushed)
		return nil
	}))
	select {
	case <-flushed:
	case <-time.After(time.Second):
		t.Fatal("interval flush did not run")
	}
	require.NoError(t, bw.Close())
}

func TestBatchWriterHaltsAfterFailure(t *testing.T) {
	conn := setupDB(t)
	fileID, err := db.CreateOrGetSourceFile(conn, "halt.export.CSV", "event")
	require.NoError(t, err)

	bw := NewBatchWriter(conn, 1, 0)
	errCh := make(chan error, 1)
	bw.OnError = func(e error) { errCh <- e }

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		close(started)
		<-release
		return errors.New("disk full")
	}))
	<-started

	// Both batches are queued behind the failing one.
	for _, idx := range []int{5, 6} {
		require.NoError(t, bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			return db.UpdateFileProgress(tx, fileID, idx)
		}))
	}
	close(release)

	select {
	case e := <-errCh:
		assert.Contains(t, e.Error(), "disk full")
	case <-time.After(time.Second):
		t.Fatal("expected OnError after the failed batch")
	}

	err = bw.Submit(func(context.Context, *sql.Tx) error { return nil })
	assert.ErrorIs(t, err, ErrBatchWriterHalted)
	assert.ErrorContains(t, err, "disk full")

	assert.ErrorContains(t, bw.Close(), "disk full")
	assert.Zero(t, bw.Committed())
	assert.Equal(t, 2, bw.Dropped())

	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, -1, progress, "no checkpoint commits behind a failed batch")
}

func TestBatchWriterCloseSkipsPendingAfterFailure(t *testing.T) {
	bw := NewBatchWriter(nil, 2, 0)
	started := make(chan struct{})
	release := make(chan struct{})
	noop := func(context.Context, *sql.Tx) error { return nil }
	require.NoError(t, bw.Submit(func(context.Context, *sql.Tx) error {
		close(started)
		<-release
		return errors.New("boom")
	}))
	require.NoError(t, bw.Submit(noop))
	<-started

	// Still buffered when the batch ahead of it fails.
	var ran atomic.Int32
	require.NoError(t, bw.Submit(func(context.Context, *sql.Tx) error {
		ran.Add(1)
		return nil
	}))
	close(release)
	require.Eventually(t, func() bool { return bw.Err() != nil }, time.Second, 5*time.Millisecond)

	assert.ErrorContains(t, bw.Close(), "boom")
	assert.Zero(t, ran.Load())
	assert.Equal(t, 1, bw.Dropped())
}
