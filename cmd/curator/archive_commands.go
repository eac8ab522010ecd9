package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/archive"
)

func newZipCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "zip <path>",
		Short: "Compress a file or directory into a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".zip"
			if outputFlag != "" {
				if dst, err = resolveArgPath(outputFlag); err != nil {
					return err
				}
			}
			if err := archive.Compress(src, dst); err != nil {
				return err
			}
			ctx.journal("zip", map[string]string{"source": src, "archive": dst})
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Archive path (default: alongside the source)")
	return cmd
}

func newUnzipCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "unzip <archive>",
		Short: "Extract a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			dst := strings.TrimSuffix(src, filepath.Ext(src))
			if outputFlag != "" {
				if dst, err = resolveArgPath(outputFlag); err != nil {
					return err
				}
			}
			if err := archive.Extract(src, dst); err != nil {
				return err
			}
			ctx.journal("unzip", map[string]string{"archive": src, "destination": dst})
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted into %s\n", dst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Extraction directory (default: alongside the archive)")
	return cmd
}
