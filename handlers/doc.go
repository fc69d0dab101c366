// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the board2md API.

# Handler Types

Each handler is a struct with its dependencies:

  - ConvertHandler: upload relay to the conversion service
  - NormalizeHandler: Markdown cleanup without a service call
  - RenderHandler: raw, preview and PDF views

Handlers are created via constructor functions:

	convertHandler := handlers.NewConvertHandler(client, normalizer, cfg)

The conversion service is reached through the Converter interface, which
*vlm.Client implements; tests substitute a fake.

# Conversion Flow

	POST /api/convert (multipart, field "file")
	  → size check (MaxUploadBytes, 413)
	  → optional downscale and JPEG re-encode (imageprep)
	  → Converter.Convert with RequestTimeout
	  → markdown.Normalizer
	  → {success, markdown, formattedMarkdown, processing_time, fileName, fileSize, fileType}

Service failures map to client statuses:

	*vlm.StatusError    → same status and message
	*vlm.NotJSONError   → 502 Conversion failed
	timeout             → 504 Conversion timed out
	anything else       → 500 Internal server error

# Normalize and Render

	POST /api/normalize {"markdown": ..., "expand_line_breaks": false, "heuristics": false}
	POST /api/render    {"markdown": "...", "view": "pdf", "normalize": true}

Per-request switches override the server defaults for that request only.
*/
package handlers
