// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/board2md/markdown"
)

// normalizeFlags are shared by every command that normalizes text.
type normalizeFlags struct {
	noExpand     bool
	noHeuristics bool
	rulesFile    string
}

func (f *normalizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noExpand, "no-expand", false, "Keep single line breaks")
	cmd.Flags().BoolVar(&f.noHeuristics, "no-heuristics", false, "Skip the whiteboard rules")
	cmd.Flags().StringVar(&f.rulesFile, "rules", "", "YAML rule file replacing the built-in rules")
}

func (f *normalizeFlags) normalizer() (*markdown.Normalizer, error) {
	opts := []markdown.Option{markdown.WithLineBreakExpansion(!f.noExpand)}
	switch {
	case f.noHeuristics:
		opts = append(opts, markdown.WithoutHeuristics())
	case f.rulesFile != "":
		rules, err := markdown.LoadRulesFile(f.rulesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, markdown.WithRules(rules))
	}
	return markdown.NewNormalizer(opts...), nil
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "board2md",
		Short: "board2md: turn whiteboard photos into Markdown",
		Long: `board2md sends a whiteboard photo to the conversion service and cleans up
the Markdown it returns: comments and stray entities are removed, line
breaks are kept, and plain notes become headings and bullets.

Usage:
  board2md convert <image> [flags]
  board2md normalize [file] [flags]`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine
			_ = godotenv.Load()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(newConvertCmd(), newNormalizeCmd())
	return root
}
