// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the board2md API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	client := vlm.NewClient(vlm.Config{URL: cfg.ServiceURL, Token: cfg.ServiceToken}, nil)
	mux := router.NewRouter(client, markdown.NewNormalizer(), cfg)

# Endpoints

Health:

	GET /health - "OK"
	GET /       - "board2md API v1"

Conversion:

	POST /api/convert   - multipart upload (field "file") relayed to the service
	POST /api/normalize - clean up Markdown text
	POST /api/render    - raw, preview (HTML) or pdf view of Markdown

Other methods on these paths get 405 from the ServeMux.

# Handler Initialization

The router creates handler instances with dependency injection:

	convertHandler := handlers.NewConvertHandler(converter, normalizer, cfg)
	normalizeHandler := handlers.NewNormalizeHandler(normalizer)
	renderHandler := handlers.NewRenderHandler(normalizer)

All handlers share one Normalizer; it is safe for concurrent use.
*/
package router
