// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/board2md/cliparse"
	"github.com/danielhkuo/board2md/handlers"
	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/middleware"
)

func NewRouter(converter handlers.Converter, normalizer *markdown.Normalizer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	convertHandler := handlers.NewConvertHandler(converter, normalizer, cfg)
	normalizeHandler := handlers.NewNormalizeHandler(normalizer)
	renderHandler := handlers.NewRenderHandler(normalizer)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Conversion relay
	mux.HandleFunc("POST /api/convert", middleware.WithLogging(convertHandler.Convert))

	// Text-only operations
	mux.HandleFunc("POST /api/normalize", middleware.WithLogging(normalizeHandler.Normalize))
	mux.HandleFunc("POST /api/render", middleware.WithLogging(renderHandler.Render))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("board2md API v1"))
	})

	return mux
}
