// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/board2md/imageprep"
	"github.com/danielhkuo/board2md/render"
	"github.com/danielhkuo/board2md/vlm"
)

type convertOptions struct {
	normalizeFlags

	outDir     string
	view       string
	noCompress bool
	keepRaw    bool
	url        string
	token      string
	timeout    time.Duration
}

func newConvertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <image>",
		Short: "Convert a whiteboard photo to Markdown, HTML or PDF",
		Long: `Convert compresses the photo, sends it to the conversion service,
normalizes the returned Markdown and writes it in the chosen view.

The service URL and token fall back to BEAM_SERVICE_URL and BEAM_TOKEN,
which may also come from a .env file.

Examples:
  board2md convert board.jpg
  board2md convert board.png --view pdf --out ./notes
  board2md convert board.heic --no-compress --keep-raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.outDir, "out", "", "Output directory (default: current directory)")
	cmd.Flags().StringVar(&opts.view, "view", render.ViewRaw, "Output view: raw, preview or pdf")
	cmd.Flags().BoolVar(&opts.noCompress, "no-compress", false, "Send the image without re-encoding")
	cmd.Flags().BoolVar(&opts.keepRaw, "keep-raw", false, "Also write the service output as <name>.raw.md")
	cmd.Flags().StringVar(&opts.url, "url", "", "Conversion service URL (default: BEAM_SERVICE_URL)")
	cmd.Flags().StringVar(&opts.token, "token", "", "Service token (default: BEAM_TOKEN)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 120*time.Second, "Conversion timeout")
	opts.register(cmd)

	return cmd
}

func runConvert(cmd *cobra.Command, path string, opts convertOptions) error {
	renderer, err := render.ForView(opts.view)
	if err != nil {
		return err
	}
	normalizer, err := opts.normalizer()
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	if opts.url == "" {
		opts.url = os.Getenv("BEAM_SERVICE_URL")
	}
	if opts.token == "" {
		opts.token = os.Getenv("BEAM_TOKEN")
	}
	if opts.url == "" {
		return errors.New("service URL required (use --url or BEAM_SERVICE_URL)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	img := vlm.Image{Name: filepath.Base(path), ContentType: http.DetectContentType(data), Data: data}
	if !opts.noCompress {
		f, err := imageprep.Compress(data, path)
		switch {
		case err == nil:
			slog.Info("image compressed", "from", humanize.Bytes(uint64(len(data))), "to", humanize.Bytes(uint64(len(f.Data))))
			img = vlm.Image{Name: f.Name, ContentType: f.ContentType, Data: f.Data}
		case errors.Is(err, imageprep.ErrUnsupportedImage):
			slog.Warn("compression skipped", "file", path, "error", err)
		default:
			return fmt.Errorf("compressing image: %w", err)
		}
	}

	client := vlm.NewClient(vlm.Config{URL: opts.url, Token: opts.token, Timeout: opts.timeout}, slog.Default())
	res, err := client.Convert(cmd.Context(), img)
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}

	body, err := renderer.Render(normalizer.Normalize(res.Markdown))
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out, err := writeOutput(opts.outDir, base+renderer.Extension(), body)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%s)\n", out, humanize.Bytes(uint64(len(body))))

	if opts.keepRaw {
		rawPath, err := writeOutput(opts.outDir, base+".raw.md", []byte(res.Markdown))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%s)\n", rawPath, humanize.Bytes(uint64(len(res.Markdown))))
	}

	if res.ProcessingTime != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  processed in %.1fs\n", *res.ProcessingTime)
	}
	return nil
}

func writeOutput(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
