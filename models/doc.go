// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - NormalizeRequest: markdown (any JSON value), expand_line_breaks, heuristics
  - RenderRequest: markdown, view (raw, preview, pdf), normalize

# Response Types

  - ConvertResponse: success, markdown, formattedMarkdown, processing_time,
    fileName, fileSize, fileType
  - NormalizeResponse: markdown, structured
  - ErrorResponse: error

Optional request flags are pointers so an absent field keeps the server
default.
*/
package models
