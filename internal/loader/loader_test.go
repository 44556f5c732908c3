package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, w, h int, fill color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadDecodesPNGToLinear(t *testing.T) {
	data := encodeTestPNG(t, 4, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img, format, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.True(t, img.Valid())

	// Fully white sRGB decodes to linear 1.0.
	p := img.At(0, 0)
	assert.InDelta(t, 1.0, p.R, 1e-4)
	assert.InDelta(t, 1.0, p.A, 1e-4)
}

func TestLoadDecodesMidGraySRGBToLinear(t *testing.T) {
	data := encodeTestPNG(t, 1, 1, color.NRGBA{R: 188, G: 188, B: 188, A: 255})
	img, _, err := Load(bytes.NewReader(data))
	require.NoError(t, err)

	// 188/255 sRGB-encoded decodes to roughly linear 0.5 (inverse of the
	// srgbEncode8(0.5) == 188 scenario in colorcore).
	p := img.At(0, 0)
	assert.InDelta(t, 0.5, p.R, 0.01)
}

func TestLoadRejectsUndecodable(t *testing.T) {
	_, _, err := Load(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
