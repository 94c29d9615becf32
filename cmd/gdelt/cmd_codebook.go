package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCodebookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codebook",
		Short: "Inspect the GCAM codebook",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print variable counts per dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := a.loadCodebook()
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s", cb.Diagnostics())
			return nil
		},
	}

	lookup := &cobra.Command{
		Use:   "lookup <variable>",
		Short: "Print the codebook entry of one GCAM variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := a.loadCodebook()
			if err != nil {
				return err
			}
			e, ok := cb.GetByVariable(args[0])
			if !ok {
				return fmt.Errorf("variable %q is not in the codebook", args[0])
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(e)
		},
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List GCAM variables in sorted order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := a.loadCodebook()
			if err != nil {
				return err
			}
			for _, v := range cb.ListVariables(limit) {
				printf(cmd.OutOrStdout(), "%s\n", v)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "print at most this many variables (0 for all)")

	cmd.AddCommand(stats, lookup, list)
	return cmd
}
