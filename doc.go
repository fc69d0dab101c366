// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the board2md API server.

board2md turns photos of whiteboards into Markdown. Uploads are shrunk,
relayed to a vision-language conversion service, and the returned text is
cleaned up: comments and stray entities removed, line breaks preserved, and
plain whiteboard notes (dates, course sections, outreach counts) turned
into headings and bullets.

# Starting the Server

The server reads a .env file, then environment variables or CLI flags:

	BEAM_SERVICE_URL=https://... BEAM_TOKEN=... go run .

Or with flags:

	go run . -p 3318 -u "https://..." -token "..."

# Configuration

Required settings:

  - BEAM_SERVICE_URL (-u): Conversion service endpoint
  - BEAM_TOKEN (-token): Bearer token for the service

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - MAX_UPLOAD_BYTES (-max-upload): Upload limit (default: 10 MiB)
  - REQUEST_TIMEOUT (-timeout): Conversion timeout (default: 120s)
  - COMPRESS_UPLOADS (-no-compress): Re-encode uploads (default: true)
  - EXPAND_LINE_BREAKS (-no-expand): Double newlines (default: true)
  - HEURISTICS (-no-heuristics): Whiteboard rules (default: true)
  - RULES_FILE (-rules): YAML rule table

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (convert, normalize, render)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging with request IDs, JSON helpers
  - models: Request/response types
  - markdown: The text normalizer and its rule table
  - vlm: Client for the conversion service
  - imageprep: Upload downscaling and JPEG re-encoding
  - render: Raw, HTML preview and PDF output
  - cliparse: Configuration parsing

The board2md command in cmd/board2md runs the same pipeline from a
terminal. See package documentation for each component.
*/
package main
