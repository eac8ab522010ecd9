package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"curator/internal/fileutil"
)

// newFileCommands returns the plain filesystem verbs. Each mutating verb is
// journaled after it succeeds.
func newFileCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newMoveCommand(ctx),
		newCopyCommand(ctx),
		newRemoveCommand(ctx),
		newMkdirCommand(ctx),
		newRmdirCommand(ctx),
		newRenameDirCommand(ctx),
		newListCommand(ctx),
	}
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <source> <destination>",
		Short: "Move a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			dst, err := resolveArgPath(args[1])
			if err != nil {
				return err
			}
			dst, err = intoDirectory(src, dst)
			if err != nil {
				return err
			}
			if err := fileutil.Move(src, dst); err != nil {
				return fmt.Errorf("move %s: %w", src, err)
			}
			ctx.journal("move", map[string]string{"from": src, "to": dst})
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s -> %s\n", src, dst)
			return nil
		},
	}
}

func newCopyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <source> <destination>",
		Short: "Copy a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			dst, err := resolveArgPath(args[1])
			if err != nil {
				return err
			}
			dst, err = intoDirectory(src, dst)
			if err != nil {
				return err
			}
			info, err := os.Stat(src)
			if err != nil {
				return fmt.Errorf("copy %s: %w", src, err)
			}
			if info.IsDir() {
				err = fileutil.CopyTree(src, dst)
			} else {
				err = fileutil.CopyFileMode(src, dst, info.Mode().Perm())
			}
			if err != nil {
				return fmt.Errorf("copy %s: %w", src, err)
			}
			ctx.journal("copy", map[string]string{"from": src, "to": dst})
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s -> %s\n", src, dst)
			return nil
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a file or directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			if err := fileutil.Delete(path); err != nil {
				return fmt.Errorf("delete %s: %w", path, err)
			}
			ctx.journal("delete", map[string]string{"path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", path)
			return nil
		},
	}
}

func newMkdirCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory, including parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			ctx.journal("mkdir", map[string]string{"path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}

func newRmdirCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir <path>",
		Short: "Remove an empty directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("remove %s: %w", path, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("remove %s: not a directory (use rm for files)", path)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove %s: %w (use rm to delete non-empty directories)", path, err)
			}
			ctx.journal("rmdir", map[string]string{"path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
			return nil
		},
	}
}

func newRenameDirCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-dir <old> <new>",
		Short: "Rename a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldPath, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			newPath, err := resolveArgPath(args[1])
			if err != nil {
				return err
			}
			info, err := os.Stat(oldPath)
			if err != nil {
				return fmt.Errorf("rename %s: %w", oldPath, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("rename %s: not a directory (use mv for files)", oldPath)
			}
			if _, err := os.Stat(newPath); err == nil {
				return fmt.Errorf("rename %s: %s already exists", oldPath, newPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("inspect %s: %w", newPath, err)
			}
			if err := fileutil.Move(oldPath, newPath); err != nil {
				return fmt.Errorf("rename %s: %w", oldPath, err)
			}
			ctx.journal("rename-dir", map[string]string{"from": oldPath, "to": newPath})
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s -> %s\n", oldPath, newPath)
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "List directory contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.SourceDir
			if len(args) == 1 {
				if dir, err = resolveArgPath(args[0]); err != nil {
					return err
				}
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("list %s: %w", dir, err)
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				size := ""
				if info, err := entry.Info(); err == nil && !entry.IsDir() {
					size = humanize.IBytes(uint64(info.Size()))
				}
				kind := "file"
				if entry.IsDir() {
					kind = "dir"
				}
				rows = append(rows, []string{entry.Name(), kind, size})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "%s is empty\n", dir)
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Type", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}

// intoDirectory redirects a destination that is an existing directory to a
// same-named entry inside it, matching shell mv/cp behavior.
func intoDirectory(src, dst string) (string, error) {
	info, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return dst, nil
		}
		return "", fmt.Errorf("inspect destination %s: %w", dst, err)
	}
	if info.IsDir() {
		return filepath.Join(dst, filepath.Base(src)), nil
	}
	return dst, nil
}
