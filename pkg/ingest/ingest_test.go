package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/codebook"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/db"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/metrics"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupDB(t testing.TB) *sql.DB {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// eventRow builds a minimal valid 61-column events row.
func eventRow(id int) []string {
	f := make([]string, 61)
	f[0] = fmt.Sprint(id)
	f[1] = "20250322"
	f[26] = "040"
	f[30] = "1.0"
	f[59] = "20250322180000"
	f[60] = fmt.Sprintf("https://example.com/%d", id)
	return f
}

func eventRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = eventRow(1000 + i)
	}
	return rows
}

func TestIngestEvents(t *testing.T) {
	conn := setupDB(t)
	rows := eventRows(10)
	rows[3][0] = "not-an-id"
	rows[6][26] = ""
	rows[8][30] = "steady"

	reg := prometheus.NewRegistry()
	ig := NewIngester(conn, nil)
	ig.BatchSize = 3
	ig.Metrics = metrics.New(reg)
	var progress []int
	var mu sync.Mutex
	ig.OnProgress = func(current, total int) {
		mu.Lock()
		progress = append(progress, current)
		mu.Unlock()
		assert.Equal(t, 10, total)
	}

	sum, err := ig.Ingest(context.Background(), "20250322180000.export.CSV", record.KindEvent, rows)
	require.NoError(t, err)
	assert.Equal(t, 10, sum.Rows)
	assert.Equal(t, 8, sum.Decoded)
	assert.Equal(t, 2, sum.Rejected)
	assert.Equal(t, 1, sum.OptionalFailures)
	assert.Equal(t, 0, sum.StartRow)

	n, err := db.CountRows(conn, "events")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	rejections, err := db.ListRejections(conn, sum.RunID.String())
	require.NoError(t, err)
	require.Len(t, rejections, 2)
	assert.Equal(t, 3, rejections[0].RowIndex)
	assert.Equal(t, "primary_key", rejections[0].Reason)
	assert.Equal(t, 0, rejections[0].FieldIndex)
	assert.Equal(t, 6, rejections[1].RowIndex)
	assert.Equal(t, "missing", rejections[1].Reason)
	assert.Equal(t, "EventCode", rejections[1].FieldName)

	run, err := db.GetRun(conn, sum.RunID.String())
	require.NoError(t, err)
	assert.Equal(t, db.RunCounts{Rows: 10, Decoded: 8, Rejected: 2, OptionalFailures: 1}, run.Counts)
	assert.NotNil(t, run.FinishedAt)
	assert.Empty(t, run.Error)

	ev, err := db.GetEvent(conn, 1008)
	require.NoError(t, err)
	assert.False(t, ev.Goldstein.Valid)

	mu.Lock()
	assert.Equal(t, []int{3, 6, 9, 10}, progress)
	mu.Unlock()

	assert.Equal(t, 8.0, testutil.ToFloat64(ig.Metrics.Decoded.WithLabelValues("event")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ig.Metrics.Rejected.WithLabelValues("event", "primary_key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ig.Metrics.Rejected.WithLabelValues("event", "missing")))
}

func TestIngestResume(t *testing.T) {
	conn := setupDB(t)
	rows := eventRows(10)

	fileID, err := db.CreateOrGetSourceFile(conn, "resume.export.CSV", "event")
	require.NoError(t, err)
	// Rows 0-4 were handled by an earlier run.
	require.NoError(t, db.UpdateFileProgress(conn, fileID, 4))

	ig := NewIngester(conn, nil)
	ig.BatchSize = 2

	sum, err := ig.Ingest(context.Background(), "resume.export.CSV", record.KindEvent, rows)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.StartRow)
	assert.Equal(t, 5, sum.Rows)

	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, 9, progress)

	again, err := ig.Ingest(context.Background(), "resume.export.CSV", record.KindEvent, rows)
	require.NoError(t, err)
	assert.Zero(t, again.Rows)
	assert.NotEqual(t, sum.RunID, again.RunID)

	n, err := db.CountRows(conn, "events")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestIngestFailedBatchKeepsCheckpoint(t *testing.T) {
	conn := setupDB(t)
	_, err := conn.Exec(`CREATE TRIGGER reject_1001 BEFORE INSERT ON events
		WHEN NEW.global_event_id = 1001 BEGIN SELECT RAISE(ABORT, 'boom'); END`)
	require.NoError(t, err)
	rows := eventRows(6)

	ig := NewIngester(conn, nil)
	ig.BatchSize = 1
	_, err = ig.Ingest(context.Background(), "trigger.export.CSV", record.KindEvent, rows)
	require.ErrorContains(t, err, "boom")

	fileID, err := db.CreateOrGetSourceFile(conn, "trigger.export.CSV", "event")
	require.NoError(t, err)
	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress, "checkpoint stays before the failed row")
	n, err := db.CountRows(conn, "events")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = conn.Exec(`DROP TRIGGER reject_1001`)
	require.NoError(t, err)
	sum, err := ig.Ingest(context.Background(), "trigger.export.CSV", record.KindEvent, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.StartRow)
	n, err = db.CountRows(conn, "events")
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestIngestSchemaErrorStopsRun(t *testing.T) {
	conn := setupDB(t)
	rows := eventRows(6)
	rows[4] = rows[4][:58]

	ig := NewIngester(conn, nil)
	ig.BatchSize = 1
	sum, err := ig.Ingest(context.Background(), "short.export.CSV", record.KindEvent, rows)
	require.ErrorIs(t, err, record.ErrFieldCount)
	assert.Equal(t, 4, sum.Rows)

	fileID, err := db.CreateOrGetSourceFile(conn, "short.export.CSV", "event")
	require.NoError(t, err)
	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress, "the bad row is not checkpointed")

	run, err := db.GetRun(conn, sum.RunID.String())
	require.NoError(t, err)
	assert.Contains(t, run.Error, "wrong field count")
}

func TestIngestMentionsAndGKG(t *testing.T) {
	conn := setupDB(t)
	cb, err := codebook.Default()
	require.NoError(t, err)

	mention := []string{
		"1233702893", "20250322180000", "20250322181500", "1", "yakimaherald.com",
		"https://www.yakimaherald.com/story.html", "2", "-1", "120", "140", "1", "60", "4012", "-3.5", "", "",
	}
	ig := NewIngester(conn, cb)
	sum, err := ig.Ingest(context.Background(), "20250322181500.mentions.CSV", record.KindMention, [][]string{mention})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Decoded)

	gkg := make([]string, 27)
	gkg[0] = "20250322180000-7"
	gkg[1] = "20250322180000"
	gkg[2] = "1"
	gkg[4] = "https://www.yakimaherald.com/story.html"
	gkg[8] = "GOOD,1;BAD"
	gkg[17] = "wc:870,c1.1:3,zz9.9:1"
	sum, err = ig.Ingest(context.Background(), "20250322180000.gkg.csv", record.KindGKG, [][]string{gkg})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Decoded)
	assert.Equal(t, 1, sum.Skipped)

	n, err := db.CountRows(conn, "gkg_gcam")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = db.CountRows(conn, "mentions")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIngestContextCancel(t *testing.T) {
	conn := setupDB(t)
	ig := NewIngester(conn, nil)
	ig.BatchSize = 10

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := ig.Ingest(ctx, "cancel.export.CSV", record.KindEvent, eventRows(100))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Rows)

	n, err := db.CountRows(conn, "events")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIngestRejectsUnknownKind(t *testing.T) {
	conn := setupDB(t)
	_, err := NewIngester(conn, nil).Ingest(context.Background(), "x", record.KindUnknown, eventRows(1))
	assert.Error(t, err)

	_, err = NewIngester(nil, nil).Ingest(context.Background(), "x", record.KindEvent, eventRows(1))
	assert.Error(t, err)
}

func TestIngestManyWorkersKeepsOrder(t *testing.T) {
	conn := setupDB(t)
	rows := eventRows(200)
	ig := NewIngester(conn, nil)
	ig.Workers = 8
	ig.BatchSize = 16
	ig.FlushInterval = time.Millisecond

	sum, err := ig.Ingest(context.Background(), "order.export.CSV", record.KindEvent, rows)
	require.NoError(t, err)
	assert.Equal(t, 200, sum.Decoded)

	fileID, err := db.CreateOrGetSourceFile(conn, "order.export.CSV", "event")
	require.NoError(t, err)
	progress, err := db.GetFileProgress(conn, fileID)
	require.NoError(t, err)
	assert.Equal(t, 199, progress)
}
