package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"curator/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find files by name or content keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.TargetDir
			if dirFlag != "" {
				if root, err = resolveArgPath(dirFlag); err != nil {
					return err
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			matches, err := search.NewSearcher(logger).Search(cmd.Context(), root, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No matches for %q under %s\n", args[0], root)
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, match := range matches {
				where := "name"
				if match.Line > 0 {
					where = "line " + strconv.Itoa(match.Line)
				}
				rows = append(rows, []string{match.Path, where, match.Snippet})
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Match", "Snippet"}, rows, nil))
			fmt.Fprintf(out, "%s\n", plural(len(matches), "hit"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to search (default: target directory)")
	return cmd
}
