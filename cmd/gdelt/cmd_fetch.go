package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/fetch"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

func newFetchCmd(a *app) *cobra.Command {
	var dir, date, kind string
	var download, ingestFiles, translation bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "List or download the latest GDELT update",
		Long: `Reads lastupdate.txt from the configured feed and prints its archives.
With --date the master file list is searched for the archives of one
update slot (YYYYMMDDHHMMSS) instead, optionally narrowed by --kind. With
--download the archives are fetched into --dir and checked against their
MD5. --ingest also stores the downloaded files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Fetch.Dir
			}
			f := fetch.New(a.cfg.Fetch.BaseURL, a.logger)
			f.Translation = translation || a.cfg.Fetch.Translation
			f.Client.Timeout = a.cfg.FetchTimeout()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			archives, err := a.listArchives(ctx, f, date, kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ar := range archives {
				printf(out, "%-8s %10d  %s  %s\n", ar.Kind, ar.Size, ar.MD5, ar.URL)
			}
			if !download && !ingestFiles {
				return nil
			}

			paths, err := f.DownloadAll(ctx, archives, dir, a.cfg.Fetch.Concurrency)
			if err != nil {
				return err
			}
			for _, p := range paths {
				printf(out, "saved %s\n", p)
			}
			if ingestFiles {
				return a.ingestFiles(cmd, "", paths)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "download directory (default from config)")
	cmd.Flags().BoolVar(&download, "download", false, "download the listed archives")
	cmd.Flags().BoolVar(&ingestFiles, "ingest", false, "download and ingest the listed archives")
	cmd.Flags().StringVar(&date, "date", "", "update slot to fetch from the master list, YYYYMMDDHHMMSS")
	cmd.Flags().StringVar(&kind, "kind", "", "with --date, only this record kind: event, mention or gkg")
	cmd.Flags().BoolVar(&translation, "translation", false, "use the translated-stream update list")
	return cmd
}

// listArchives returns the latest update, or with date the archives of that
// slot from the master list.
func (a *app) listArchives(ctx context.Context, f *fetch.Fetcher, date, kind string) ([]fetch.Archive, error) {
	if date == "" {
		if kind != "" {
			return nil, errors.New("--kind needs --date")
		}
		return f.LatestUpdate(ctx)
	}
	ts, err := field.RequiredDateTime(date)
	if err != nil {
		return nil, fmt.Errorf("--date: %w", err)
	}
	k := record.KindUnknown
	if kind != "" {
		if k, err = record.ParseKind(kind); err != nil {
			return nil, err
		}
	}
	all, err := f.MasterList(ctx)
	if err != nil {
		return nil, err
	}
	archives := fetch.ByTimestamp(all, ts, k)
	if len(archives) == 0 {
		return nil, fmt.Errorf("no archives for %s in the master list", ts.Format("20060102150405"))
	}
	a.logger.Debug("master list searched", zap.Int("archives", len(all)), zap.Int("matched", len(archives)))
	return archives, nil
}
