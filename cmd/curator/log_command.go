package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/oplog"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var tailFlag int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the operation journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := oplog.Tail(cfg.Paths.OperationLog, tailFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No operations recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Time.Local().Format("2006-01-02 15:04:05"),
					entry.Operation,
					formatDetails(entry.Details),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Time", "Operation", "Details"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().IntVarP(&tailFlag, "tail", "n", 20, "Show only the most recent entries (0 for all)")
	return cmd
}

func formatDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+details[key])
	}
	return strings.Join(parts, " ")
}
