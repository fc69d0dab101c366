package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/board2md/cliparse"
	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/middleware"
	"github.com/danielhkuo/board2md/router"
	"github.com/danielhkuo/board2md/vlm"
)

func main() {
	var err error

	// A missing .env is fine; real env variables still apply
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	normalizer, err := newNormalizer(cfg)
	if err != nil {
		slog.Error("loading rules failed", "file", cfg.RulesFile, "error", err)
		os.Exit(1)
	}

	client := vlm.NewClient(vlm.Config{
		URL:     cfg.ServiceURL,
		Token:   cfg.ServiceToken,
		Timeout: cfg.RequestTimeout,
	}, slog.Default())

	// Create router
	mux := router.NewRouter(client, normalizer, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight conversions finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening",
		"port", cfg.Port,
		"max_upload", humanize.IBytes(uint64(cfg.MaxUploadBytes)),
		"timeout", cfg.RequestTimeout.String(),
		"compress", cfg.Compress,
		"rules", len(normalizer.Rules()),
	)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newNormalizer builds the shared normalizer from the configuration
func newNormalizer(cfg cliparse.Config) (*markdown.Normalizer, error) {
	opts := []markdown.Option{markdown.WithLineBreakExpansion(cfg.ExpandLineBreaks)}

	switch {
	case !cfg.Heuristics:
		opts = append(opts, markdown.WithoutHeuristics())
	case cfg.RulesFile != "":
		rules, err := markdown.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, markdown.WithRules(rules))
	}

	return markdown.NewNormalizer(opts...), nil
}
