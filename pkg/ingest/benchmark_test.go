package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

func BenchmarkIngest(b *testing.B) {
	rows := eventRows(1000)
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		conn := setupDB(b)
		ig := NewIngester(conn, nil)
		ig.BatchSize = 100
		b.StartTimer()

		if _, err := ig.Ingest(context.Background(), fmt.Sprintf("bench_%d", i), record.KindEvent, rows); err != nil {
			b.Fatalf("Ingest failed: %v", err)
		}
	}
}

func BenchmarkIngestConcurrencyScaling(b *testing.B) {
	rows := eventRows(1000)
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				conn := setupDB(b)
				ig := NewIngester(conn, nil)
				ig.Workers = workers
				ig.BatchSize = 100
				b.StartTimer()

				if _, err := ig.Ingest(context.Background(), fmt.Sprintf("bench_%d_%d", workers, i), record.KindEvent, rows); err != nil {
					b.Fatalf("Ingest failed: %v", err)
				}
			}
		})
	}
}
