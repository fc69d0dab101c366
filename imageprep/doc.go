// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package imageprep shrinks whiteboard photos before they are sent for
conversion.

Compress accepts JPEG, PNG, GIF and WebP input, scales it so the longer
side is at most MaxDimension pixels, flattens transparency onto white and
re-encodes it as JPEG at Quality:

	f, err := imageprep.Compress(data, "board.png")
	if errors.Is(err, imageprep.ErrUnsupportedImage) {
		// forward the original bytes
	}
*/
package imageprep
