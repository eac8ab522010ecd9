package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var targetFlag string

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "File everything in the source directory into category folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, target := cfg.Paths.SourceDir, cfg.Paths.TargetDir
			if sourceFlag != "" {
				if source, err = resolveArgPath(sourceFlag); err != nil {
					return err
				}
			}
			if targetFlag != "" {
				if target, err = resolveArgPath(targetFlag); err != nil {
					return err
				}
			}

			sink, err := ctx.openSink()
			if err != nil {
				return err
			}
			defer sink.Close()

			organizer, err := ctx.buildOrganizer(sink)
			if err != nil {
				return err
			}
			result, err := organizer.Run(cmd.Context(), source, target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary := result.CategorySummary(); len(summary) > 0 {
				rows := make([][]string, 0, len(summary))
				for _, row := range summary {
					rows = append(rows, []string{row.Category, strconv.Itoa(row.Count)})
				}
				fmt.Fprintln(out, renderTable([]string{"Category", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
			}
			fmt.Fprintf(out, "Placed %s", plural(len(result.Placed), "file"))
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, ", skipped %d", len(result.Skipped))
			}
			if len(result.Failures) > 0 {
				fmt.Fprintf(out, ", %d failed", len(result.Failures))
			}
			fmt.Fprintln(out)
			for _, failure := range result.Failures {
				fmt.Fprintf(out, "  failed: %s: %v\n", failure.Path, failure.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFlag, "source", "", "Override the configured source directory")
	cmd.Flags().StringVar(&targetFlag, "target", "", "Override the configured target directory")
	return cmd
}

func newSortByDateCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var targetFlag string

	cmd := &cobra.Command{
		Use:   "sort-by-date",
		Short: "File everything in the source directory into YYYY-MM-DD folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, target := cfg.Paths.SourceDir, cfg.Paths.TargetDir
			if sourceFlag != "" {
				if source, err = resolveArgPath(sourceFlag); err != nil {
					return err
				}
			}
			if targetFlag != "" {
				if target, err = resolveArgPath(targetFlag); err != nil {
					return err
				}
			}

			sink, err := ctx.openSink()
			if err != nil {
				return err
			}
			defer sink.Close()

			organizer, err := ctx.buildOrganizer(sink)
			if err != nil {
				return err
			}
			result, err := organizer.RunByDate(cmd.Context(), source, target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Placed %s into dated folders\n", plural(len(result.Placed), "file"))
			for _, failure := range result.Failures {
				fmt.Fprintf(out, "  failed: %s: %v\n", failure.Path, failure.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFlag, "source", "", "Override the configured source directory")
	cmd.Flags().StringVar(&targetFlag, "target", "", "Override the configured target directory")
	return cmd
}
