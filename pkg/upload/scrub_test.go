package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage returns a small image with a non-uniform pattern so encoders
// have real pixel data to work with.
func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

func TestScrubImage_PNGRoundTrip(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, testImage()))

	out := ScrubImage(src.Bytes(), "image/png")
	require.NotNil(t, out)

	// Result decodes as PNG with the original dimensions
	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 8, 8), decoded.Bounds())
}

func TestScrubImage_JPEGRoundTrip(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, jpeg.Encode(&src, testImage(), nil))

	out := ScrubImage(src.Bytes(), "image/jpeg")
	require.NotNil(t, out)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestScrubImage_NeverReturnsOriginalBytes(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, testImage()))

	out := ScrubImage(src.Bytes(), "image/png")
	require.NotNil(t, out)
	// A fresh encode, not the input slice
	assert.NotSame(t, &src.Bytes()[0], &out[0])
}

func TestScrubImage_NonImagePassthrough(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake document body")
	out := ScrubImage(pdf, "application/pdf")
	assert.Equal(t, pdf, out)
}

func TestScrubImage_CorruptImage(t *testing.T) {
	assert.Nil(t, ScrubImage([]byte("definitely not an image"), "image/png"))
	// Valid header but truncated body
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, testImage()))
	truncated := src.Bytes()[:20]
	assert.Nil(t, ScrubImage(truncated, "image/png"))
}

func TestScrubImage_UnsupportedImageSubtype(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, testImage()))
	assert.Nil(t, ScrubImage(src.Bytes(), "image/tiff"))
}
