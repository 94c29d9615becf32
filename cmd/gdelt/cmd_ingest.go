package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/db"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/ingest"
)

func newIngestCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Decode GDELT files and store them in SQLite",
		Long: `Decodes each file and upserts its records into the database. Rejected rows
are kept in the rejections table. A file interrupted part way resumes from
its last committed row on the next run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ingestFiles(cmd, kind, args)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "record kind for every file: event, mention or gkg")
	return cmd
}

// ingestFiles ingests each path in order and prints one summary line per
// file.
func (a *app) ingestFiles(cmd *cobra.Command, kind string, paths []string) error {
	conn, err := db.Open(a.cfg.Database.Path)
	if err != nil {
		return err
	}
	defer conn.Close()

	cb, err := a.loadCodebook()
	if err != nil {
		return err
	}

	ig := ingest.NewIngester(conn, cb)
	ig.Workers = a.cfg.Ingest.Workers
	ig.BatchSize = a.cfg.Ingest.BatchSize
	ig.FlushInterval = a.cfg.FlushInterval()
	ig.Logger = a.logger

	out := cmd.OutOrStdout()
	for _, p := range paths {
		k, rows, err := readFile(p, kind)
		if err != nil {
			return err
		}
		ig.OnProgress = func(current, total int) {
			a.logger.Debug("progress", zap.String("file", p), zap.Int("row", current), zap.Int("total", total))
		}
		sum, err := ig.Ingest(cmd.Context(), p, k, rows)
		if err != nil {
			return err
		}
		printf(out, "%s: %s run %s: %d rows, %d decoded, %d rejected, %d optional failures\n",
			p, k, sum.RunID, sum.Rows, sum.Decoded, sum.Rejected, sum.OptionalFailures)
		if sum.StartRow > 0 {
			printf(out, "  resumed at row %d\n", sum.StartRow)
		}
	}
	return nil
}
