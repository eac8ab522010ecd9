package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/docfile"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var bodyFlag string

	cmd := &cobra.Command{
		Use:   "create <text|word|video> <path>",
		Short: "Create a placeholder file",
		Long: `Create a placeholder file of the given kind:

  text   plain text, optionally filled from --body
  word   minimal Word (.docx) document
  video  MP4 stub with a valid header and no media`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(args[0])
			path, err := resolveArgPath(args[1])
			if err != nil {
				return err
			}

			switch kind {
			case "text":
				err = docfile.CreateText(path, bodyFlag)
			case "word":
				err = docfile.CreateWord(path, bodyFlag)
			case "video":
				err = docfile.CreateVideo(path)
			default:
				return fmt.Errorf("unknown kind %q (want text, word, or video)", args[0])
			}
			if err != nil {
				return err
			}
			ctx.journal("create", map[string]string{"kind": kind, "path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&bodyFlag, "body", "", "Initial content for text and word placeholders")
	return cmd
}
