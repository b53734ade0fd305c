package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPatternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List rewrite patterns in match order and the cleanup literals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if cfg.Path != "" {
				fmt.Fprintf(out, "config: %s\n", cfg.Path)
			}
			if !opts.Rewrite {
				fmt.Fprintln(out, "rewriting is disabled")
			}

			rows := [][]string{{"#", "pattern", "rewrites"}}
			for i, p := range opts.Table.Patterns() {
				rows = append(rows, []string{strconv.Itoa(i + 1), p.Name, p.Doc})
			}
			printTable(out, rows)

			fmt.Fprintln(out)
			lits := [][]string{{"literal", "replacement"}}
			for _, l := range opts.Literals {
				lits = append(lits, []string{l.From, l.To})
			}
			printTable(out, lits)
			return nil
		},
	}
	cmd.Flags().String("config", "", "configuration file")
	return cmd
}
