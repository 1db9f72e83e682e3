package upload

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
)

// jpegScrubQuality is the re-encode quality for scrubbed JPEGs (0.9 of max).
const jpegScrubQuality = 90

// ScrubImage re-encodes image content to wash the pixel data, dropping
// embedded metadata, hidden payloads and malformed chunks that survive a
// plain type check.
//
// Non-image MIME types (e.g. application/pdf) are returned unchanged:
// scrubbing only applies to raster images. For image MIME types the
// content is fully decoded and re-encoded to the same MIME type; the
// result is always freshly produced bytes, never the original slice.
// A nil return signals a corrupt or unsupported image that must be
// rejected by the caller.
func ScrubImage(data []byte, declaredMIME string) []byte {
	if !strings.HasPrefix(declaredMIME, "image/") {
		return data
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	var buf bytes.Buffer
	switch declaredMIME {
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegScrubQuality})
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/gif":
		err = gif.Encode(&buf, img, nil)
	default:
		// Unsupported image subtype: reject rather than pass through.
		return nil
	}
	if err != nil {
		return nil
	}

	return buf.Bytes()
}
