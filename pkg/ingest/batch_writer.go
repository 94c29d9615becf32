package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// WriteFunc performs database writes inside a batch transaction. tx is nil
// when the writer has no database.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// BatchWriter groups writes into one transaction per batch. A batch is
// handed to the committer when it reaches the batch size or when the flush
// interval elapses, and batches commit in submission order.
//
// The first failed batch halts the writer: batches queued behind it are
// dropped without running, Submit refuses new writes and Close does not
// flush. Writes that carry a checkpoint therefore never commit past a
// rolled-back row.
type BatchWriter struct {
	// OnError is called once, with the error that halted the writer.
	OnError func(error)

	db   *sql.DB
	size int

	mu      sync.Mutex
	pending []WriteFunc
	closed  bool

	queue  chan []WriteFunc
	stop   chan struct{}
	ticker *time.Ticker
	wg     sync.WaitGroup

	halted    atomic.Bool
	committed atomic.Int64
	dropped   atomic.Int64

	errMu sync.Mutex
	err   error
}

// NewBatchWriter starts a writer on conn. size is the batch size and
// interval the longest a write waits before its batch is queued; 0 disables
// the timer.
func NewBatchWriter(conn *sql.DB, size int, interval time.Duration) *BatchWriter {
	if size <= 0 {
		size = 10
	}
	bw := &BatchWriter{
		db:      conn,
		size:    size,
		pending: make([]WriteFunc, 0, size),
		queue:   make(chan []WriteFunc, 2),
		stop:    make(chan struct{}),
	}

	bw.wg.Add(1)
	go bw.commitLoop()

	if interval > 0 {
		bw.ticker = time.NewTicker(interval)
		bw.wg.Add(1)
		go bw.tickLoop()
	}
	return bw
}

// Submit adds a write to the current batch. It blocks while the committer
// is two batches behind. After a failure it returns an error wrapping both
// ErrBatchWriterHalted and the failure.
func (bw *BatchWriter) Submit(w WriteFunc) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.closed {
		return ErrBatchWriterClosed
	}
	if err := bw.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBatchWriterHalted, err)
	}
	bw.pending = append(bw.pending, w)
	if len(bw.pending) >= bw.size {
		bw.queueLocked()
	}
	return nil
}

// queueLocked moves the pending writes to the committer. bw.mu must be held.
func (bw *BatchWriter) queueLocked() {
	if len(bw.pending) == 0 {
		return
	}
	batch := bw.pending
	bw.pending = make([]WriteFunc, 0, bw.size)
	if bw.halted.Load() {
		bw.dropped.Add(int64(len(batch)))
		return
	}
	bw.queue <- batch
}

func (bw *BatchWriter) halt(err error) {
	bw.errMu.Lock()
	first := bw.err == nil
	if first {
		bw.err = err
	}
	bw.errMu.Unlock()
	bw.halted.Store(true)
	if first && bw.OnError != nil {
		bw.OnError(err)
	}
}

// commitLoop drains the queue until Close. Once halted it only counts what
// it drops, so Submit never blocks on a dead committer.
func (bw *BatchWriter) commitLoop() {
	defer bw.wg.Done()
	for batch := range bw.queue {
		if bw.halted.Load() {
			bw.dropped.Add(int64(len(batch)))
			continue
		}
		if err := bw.commit(batch); err != nil {
			bw.halt(err)
			continue
		}
		bw.committed.Add(int64(len(batch)))
	}
}

func (bw *BatchWriter) commit(batch []WriteFunc) error {
	ctx := context.Background()
	if bw.db == nil {
		for _, w := range batch {
			if err := w(ctx, nil); err != nil {
				return err
			}
		}
		return nil
	}

	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, w := range batch {
		if err := w(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch of %d writes: %w", len(batch), err)
	}
	return nil
}

func (bw *BatchWriter) tickLoop() {
	defer bw.wg.Done()
	for {
		select {
		case <-bw.stop:
			return
		case <-bw.ticker.C:
			bw.mu.Lock()
			if !bw.closed {
				bw.queueLocked()
			}
			bw.mu.Unlock()
		}
	}
}

// Committed returns the number of writes committed so far.
func (bw *BatchWriter) Committed() int { return int(bw.committed.Load()) }

// Dropped returns the number of writes discarded after a failure.
func (bw *BatchWriter) Dropped() int { return int(bw.dropped.Load()) }

// Err returns the error that halted the writer, if any.
func (bw *BatchWriter) Err() error {
	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.err
}

// Close queues the last batch unless the writer has halted, waits for the
// committer and returns the halting error. A second Close returns
// ErrBatchWriterClosed.
func (bw *BatchWriter) Close() error {
	bw.mu.Lock()
	if bw.closed {
		bw.mu.Unlock()
		return ErrBatchWriterClosed
	}
	bw.closed = true
	if bw.ticker != nil {
		bw.ticker.Stop()
	}
	bw.queueLocked()
	bw.mu.Unlock()

	close(bw.stop)
	close(bw.queue)
	bw.wg.Wait()
	return bw.Err()
}

var (
	// ErrBatchWriterClosed is returned by Submit and Close after Close.
	ErrBatchWriterClosed = &BatchWriterError{"batch writer closed"}
	// ErrBatchWriterHalted is returned by Submit after a batch failed.
	ErrBatchWriterHalted = &BatchWriterError{"batch writer halted"}
)

// BatchWriterError is the typed error of BatchWriter operations.
type BatchWriterError struct{ msg string }

func (e *BatchWriterError) Error() string { return e.msg }
