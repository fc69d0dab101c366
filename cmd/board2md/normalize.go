// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var flags normalizeFlags

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize Markdown from a file or stdin",
		Long: `Normalize cleans up Markdown without calling the conversion service.
It reads the named file, or stdin when none is given, and prints the result.

Examples:
  board2md normalize notes.md
  pbpaste | board2md normalize --no-expand`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalizer, err := flags.normalizer()
			if err != nil {
				return fmt.Errorf("loading rules: %w", err)
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), normalizer.Normalize(string(raw)))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
