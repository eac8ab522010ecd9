package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/dupes"
)

func newDuplicatesCommand(ctx *commandContext) *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:     "duplicates [dir]",
		Aliases: []string{"dupes"},
		Short:   "Find files with identical content under a directory",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.TargetDir
			if len(args) == 1 {
				if root, err = resolveArgPath(args[0]); err != nil {
					return err
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			verify := cfg.Duplicates.VerifyContent && !noVerify
			report, err := dupes.NewDetector(verify, logger).Scan(cmd.Context(), root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(report.Pairs) > 0 {
				rows := make([][]string, 0, len(report.Pairs))
				for _, pair := range report.Pairs {
					rows = append(rows, []string{pair.Candidate, pair.Original})
				}
				fmt.Fprintln(out, renderTable([]string{"Duplicate", "Original"}, rows, nil))
			}
			fmt.Fprintf(out, "Scanned %s, found %s\n",
				plural(report.Scanned, "file"), plural(len(report.Pairs), "duplicate"))
			for _, skip := range report.Skipped {
				fmt.Fprintf(out, "  skipped: %s: %v\n", skip.Path, skip.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Trust fingerprints without byte-for-byte confirmation")
	return cmd
}
