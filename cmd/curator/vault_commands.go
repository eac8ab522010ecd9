package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/vault"
)

func newKeygenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate the encryption key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := vault.GenerateKey(cfg.Paths.KeyFile); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote key to %s\n", cfg.Paths.KeyFile)
			fmt.Fprintln(out, "Back it up somewhere safe; files encrypted with it cannot be recovered without it.")
			return nil
		},
	}
}

func newEncryptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <file>",
		Short: "Encrypt a file in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			if err := vault.EncryptFile(path, cfg.Paths.KeyFile); err != nil {
				return err
			}
			ctx.journal("encrypt", map[string]string{"path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Encrypted %s\n", path)
			return nil
		},
	}
}

func newDecryptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <file>",
		Short: "Decrypt a file in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := resolveArgPath(args[0])
			if err != nil {
				return err
			}
			if err := vault.DecryptFile(path, cfg.Paths.KeyFile); err != nil {
				return err
			}
			ctx.journal("decrypt", map[string]string{"path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Decrypted %s\n", path)
			return nil
		},
	}
}
