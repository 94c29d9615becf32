// Package ingest decodes GDELT rows in parallel and persists the records
// to SQLite with resumable per-file checkpoints.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/db"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/logging"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/metrics"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx enqueues a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Ingester decodes rows of one record kind and stores them.
type Ingester struct {
	DB *sql.DB
	// Lookup enriches GKG rows; nil leaves every GCAM variable unresolved.
	Lookup    record.Lookup
	BatchSize int
	Workers   int
	// FlushInterval bounds how long a decoded row waits before commit.
	FlushInterval time.Duration

	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// OnProgress is called with the number of rows handled and the total,
	// every BatchSize rows and once at the end.
	OnProgress func(current, total int)

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewIngester creates an Ingester with default batch and worker settings.
func NewIngester(conn *sql.DB, lookup record.Lookup) *Ingester {
	return &Ingester{
		DB:            conn,
		Lookup:        lookup,
		BatchSize:     100,
		Workers:       4,
		FlushInterval: 100 * time.Millisecond,
	}
}

// Summary is the outcome of one Ingest call.
type Summary struct {
	RunID uuid.UUID
	File  string
	Kind  record.Kind
	// StartRow is the first row index handled; earlier rows were
	// checkpointed by a previous run.
	StartRow int
	// Rows is the number of rows handled by this run.
	Rows             int
	Decoded          int
	Rejected         int
	OptionalFailures int
	Skipped          int
}

func (s Summary) counts() db.RunCounts {
	return db.RunCounts{
		Rows:             s.Rows,
		Decoded:          s.Decoded,
		Rejected:         s.Rejected,
		OptionalFailures: s.OptionalFailures,
		Skipped:          s.Skipped,
	}
}

// decodedRow is the result of decoding one row on a worker.
type decodedRow struct {
	index int
	rec   record.Decoded
	err   error
}

// Ingest decodes rows as kind and persists them under the source file
// name. It resumes after the file's checkpoint, so a second call over the
// same rows does nothing. Rejected rows are stored as rejections and never
// stop the run; a row with the wrong column count, a database error or
// cancellation does. The returned Summary holds the counts up to the
// point the run stopped.
func (ig *Ingester) Ingest(ctx context.Context, name string, kind record.Kind, rows [][]string) (Summary, error) {
	sum := Summary{RunID: uuid.New(), File: name, Kind: kind}
	if ig.DB == nil {
		return sum, errors.New("ingest: no database")
	}
	if db.TableForKind(kind) == "" {
		return sum, fmt.Errorf("ingest: unsupported record kind %s", kind)
	}
	log := logging.OrNop(ig.Logger).With(zap.String("file", name), zap.Stringer("kind", kind), zap.String("run_id", sum.RunID.String()))
	started := time.Now()

	fileID, err := db.CreateOrGetSourceFile(ig.DB, name, kind.String())
	if err != nil {
		return sum, err
	}
	lastProcessed, err := db.GetFileProgress(ig.DB, fileID)
	if err != nil {
		log.Warn("failed to read progress, starting from the first row", zap.Error(err))
		lastProcessed = -1
	}
	sum.StartRow = lastProcessed + 1
	if sum.StartRow > 0 {
		log.Info("resuming", zap.Int("row", sum.StartRow))
	}

	runID := sum.RunID.String()
	if err := db.StartRun(ig.DB, runID, fileID, started); err != nil {
		return sum, err
	}

	runErr := ig.run(ctx, &sum, runID, fileID, rows, log)

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}
	if err := db.FinishRun(ig.DB, runID, sum.counts(), time.Now(), errMsg); err != nil && runErr == nil {
		runErr = err
	}
	ig.Metrics.ObserveIngest(time.Since(started))

	if runErr != nil {
		log.Error("ingest stopped", zap.Int("rows", sum.Rows), zap.Error(runErr))
	} else {
		log.Info("ingest finished",
			zap.Int("rows", sum.Rows),
			zap.Int("decoded", sum.Decoded),
			zap.Int("rejected", sum.Rejected),
			zap.Int("optional_failures", sum.OptionalFailures),
			zap.Duration("elapsed", time.Since(started)))
	}
	return sum, runErr
}

func (ig *Ingester) run(parent context.Context, sum *Summary, runID string, fileID int64, rows [][]string, log *zap.Logger) error {
	total := len(rows)
	startIdx := sum.StartRow
	if startIdx >= total {
		return parent.Err()
	}

	workers := ig.Workers
	if workers <= 0 {
		workers = 1
	}
	batchSize := ig.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}
	resultCh := make(chan decodedRow, workers*2)
	doneCh := make(chan error, 1)

	bw := NewBatchWriter(ig.DB, batchSize, ig.FlushInterval)
	bw.OnError = func(err error) { log.Error("batch write failed", zap.Error(err)) }

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	wp.Start(ctx)

	go func() {
		doneCh <- ig.consume(ctx, cancel, sum, runID, fileID, startIdx, total, batchSize, resultCh, bw)
	}()

	var submitErr error
Loop:
	for i := startIdx; i < total; i++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		idx := i
		fields := rows[i]
		job := func(ctx context.Context) error {
			rec, err := record.Decode(sum.Kind, fields, ig.Lookup)
			select {
			case resultCh <- decodedRow{index: idx, rec: rec, err: err}:
			case <-ctx.Done():
			}
			return nil
		}

		if err := wp.SubmitCtx(ctx, job); err != nil {
			if errors.Is(err, ctx.Err()) || errors.Is(err, ErrPoolClosed) {
				break Loop
			}
			submitErr = fmt.Errorf("submit row %d: %w", idx, err)
			cancel()
			break Loop
		}
	}

	// Workers are done once Close returns, so nothing sends on resultCh
	// after it is closed.
	wp.Close()
	close(resultCh)

	consumerErr := <-doneCh
	if err := bw.Close(); err != nil && consumerErr == nil {
		consumerErr = err
	}
	if submitErr != nil {
		return submitErr
	}
	if consumerErr != nil {
		log.Debug("consumer stopped", zap.Error(consumerErr))
	}
	return consumerErr
}

// consume reorders decoded rows by index and submits one write per row.
func (ig *Ingester) consume(ctx context.Context, cancel context.CancelFunc, sum *Summary, runID string, fileID int64,
	nextIdx, total, batchSize int, resultCh <-chan decodedRow, bw *BatchWriter) error {
	buffer := make(map[int]decodedRow)

	for {
		var res decodedRow
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok = <-resultCh:
		}
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			if ig.OnProgress != nil {
				ig.OnProgress(nextIdx, total)
			}
			return nil
		}
		buffer[res.index] = res

		for {
			item, ok := buffer[nextIdx]
			if !ok {
				break
			}
			delete(buffer, nextIdx)

			w, err := ig.account(sum, runID, fileID, item)
			if err == nil {
				err = bw.Submit(w)
			}
			if err == nil {
				err = bw.Err()
			}
			if err != nil {
				cancel()
				return err
			}

			nextIdx++
			if ig.OnProgress != nil && nextIdx%batchSize == 0 {
				ig.OnProgress(nextIdx, total)
			}
		}
	}
}

// account updates the summary and metrics for one row and returns its
// write. A schema error is returned instead, which stops the run before the
// row is checkpointed.
func (ig *Ingester) account(sum *Summary, runID string, fileID int64, item decodedRow) (WriteFunc, error) {
	kind := sum.Kind.String()
	var schemaErr *record.SchemaError
	if errors.As(item.err, &schemaErr) {
		ig.Metrics.IncrementRejected(kind, "schema")
		return nil, fmt.Errorf("row %d: %w", item.index, item.err)
	}

	sum.Rows++
	if item.err != nil {
		var rej *record.RejectError
		rejection := db.Rejection{RunID: runID, RowIndex: item.index, Reason: "malformed", FieldIndex: -1, Message: item.err.Error()}
		if errors.As(item.err, &rej) {
			rejection.Reason = rej.Reason()
			if rej.Field != nil {
				rejection.FieldIndex = rej.Field.Index
				rejection.FieldName = rej.Field.Name
			}
		}
		sum.Rejected++
		ig.Metrics.IncrementRejected(kind, rejection.Reason)
		return func(ctx context.Context, tx *sql.Tx) error {
			if err := db.RecordRejection(tx, rejection); err != nil {
				return err
			}
			return db.UpdateFileProgress(tx, fileID, item.index)
		}, nil
	}

	rep := item.rec.Report
	sum.Decoded++
	sum.OptionalFailures += len(rep.Optional)
	sum.Skipped += rep.Skipped
	ig.Metrics.ObserveDecoded(kind, len(rep.Optional), rep.GCAMHits, rep.GCAMMisses, rep.GCAMSkipped, rep.Skipped)

	rec := item.rec
	return func(ctx context.Context, tx *sql.Tx) error {
		if err := store(tx, rec); err != nil {
			return fmt.Errorf("row %d: %w", item.index, err)
		}
		return db.UpdateFileProgress(tx, fileID, item.index)
	}, nil
}

func store(tx db.DBExecutor, rec record.Decoded) error {
	switch {
	case rec.Event != nil:
		return db.UpsertEvent(tx, rec.Event)
	case rec.Mention != nil:
		_, err := db.UpsertMention(tx, rec.Mention)
		return err
	case rec.GKG != nil:
		return db.UpsertGKG(tx, rec.GKG)
	}
	return fmt.Errorf("no record decoded for kind %s", rec.Kind)
}
