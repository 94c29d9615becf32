package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <kind>",
		Short: "Print the column table of a record kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := record.ParseKind(args[0])
			if err != nil {
				return err
			}
			min, max := record.FieldRange(k)
			out := cmd.OutOrStdout()
			if min == max {
				printf(out, "%s: %d columns\n", k, max)
			} else {
				printf(out, "%s: %d to %d columns\n", k, min, max)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range record.Columns(k) {
				flag := ""
				switch {
				case c.Key:
					flag = "key"
				case c.Required:
					flag = "required"
				}
				printf(tw, "%d\t%s\t%s\n", c.Index, c.Name, flag)
			}
			return tw.Flush()
		},
	}
}
