package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"curator/internal/inspect"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Show file metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			details, err := inspect.Describe(path)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Path", details.Path},
				{"Size", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(details.Size)), details.Size)},
				{"Mode", details.Mode.String()},
				{"Modified", details.Modified.Format("2006-01-02 15:04:05")},
			}
			if details.IsDir {
				rows = append(rows, []string{"Type", "directory"})
			} else if details.MIMEType != "" {
				rows = append(rows, []string{"Type", details.MIMEType})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var linesFlag int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the first lines of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			lines, err := inspect.Preview(path, linesFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&linesFlag, "lines", "n", 10, "Number of lines to show")
	return cmd
}
