// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vlm is the client for the vision-language conversion service that
turns a whiteboard image into Markdown.

	c := vlm.NewClient(vlm.Config{URL: url, Token: token}, slog.Default())
	res, err := c.Convert(ctx, vlm.Image{Name: "board.jpg", Data: data})

The image is posted as a base64 data URL. Service failures come back as
*StatusError (carrying the status to relay) or *NotJSONError when the
service answered with something other than JSON.
*/
package vlm
