package main

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/enrich"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// decodeStats summarises a decode pass over one file.
type decodeStats struct {
	Rows     int
	Decoded  int
	Schema   int
	Rejected map[string]int
	Optional map[string]int
	Skipped  int
	Coverage enrich.Coverage
}

func newDecodeCmd(a *app) *cobra.Command {
	var kind string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a GDELT file and print a summary",
		Long: `Decodes every row of an events, mentions or GKG file (plain or zipped).
The record kind is taken from the file name unless --kind is given. With
--json each decoded record is printed as one JSON line instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, rows, err := readFile(args[0], kind)
			if err != nil {
				return err
			}
			var lookup record.Lookup
			if k == record.KindGKG {
				cb, err := a.loadCodebook()
				if err != nil {
					return err
				}
				lookup = cb
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			st := decodeStats{Rejected: map[string]int{}, Optional: map[string]int{}}
			for i, fields := range rows {
				st.Rows++
				d, err := record.Decode(k, fields, lookup)
				var rej *record.RejectError
				switch {
				case errors.As(err, &rej):
					st.Rejected[rej.Reason()]++
					a.logger.Debug("row rejected", zap.Int("row", i), zap.Error(err))
					continue
				case errors.Is(err, record.ErrFieldCount):
					st.Schema++
					a.logger.Debug("wrong column count", zap.Int("row", i), zap.Error(err))
					continue
				case err != nil:
					return err
				}
				st.Decoded++
				st.Skipped += d.Report.Skipped
				for _, fe := range d.Report.Optional {
					st.Optional[fe.Name]++
				}
				hits, misses := d.Report.GCAMHits, d.Report.GCAMMisses
				st.Coverage.Add(enrich.Coverage{Total: hits + misses, With: hits, Without: misses})

				if asJSON {
					if err := enc.Encode(recordOf(d)); err != nil {
						return err
					}
				}
			}
			if !asJSON {
				printStats(cmd, k, st)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "record kind: event, mention or gkg")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print decoded records as JSON lines")
	return cmd
}

func recordOf(d record.Decoded) any {
	switch {
	case d.Event != nil:
		return d.Event
	case d.Mention != nil:
		return d.Mention
	}
	return d.GKG
}

func printStats(cmd *cobra.Command, k record.Kind, st decodeStats) {
	out := cmd.OutOrStdout()
	rejected := 0
	for _, n := range st.Rejected {
		rejected += n
	}
	printf(out, "kind:      %s\n", k)
	printf(out, "rows:      %d\n", st.Rows)
	printf(out, "decoded:   %d\n", st.Decoded)
	printf(out, "rejected:  %d\n", rejected)
	for _, reason := range sortedKeys(st.Rejected) {
		printf(out, "  %-12s %d\n", reason, st.Rejected[reason])
	}
	if st.Schema > 0 {
		printf(out, "bad width: %d\n", st.Schema)
	}
	if len(st.Optional) > 0 {
		printf(out, "optional field failures:\n")
		for _, name := range sortedKeys(st.Optional) {
			printf(out, "  %-28s %d\n", name, st.Optional[name])
		}
	}
	if k == record.KindGKG {
		printf(out, "skipped items: %d\n", st.Skipped)
		printf(out, "%s\n", st.Coverage)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
