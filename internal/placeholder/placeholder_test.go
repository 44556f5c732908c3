package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

func makePreview(w, h int, alpha func(x, y int) uint8) *colorcore.PreviewImage {
	buf := make([]uint8, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			buf[i+0] = uint8(x * 8 % 256)
			buf[i+1] = uint8(y * 8 % 256)
			buf[i+2] = 128
			buf[i+3] = alpha(x, y)
		}
	}
	return &colorcore.PreviewImage{Width: w, Height: h, RGBA8: buf}
}

func TestEncodeDeterministic(t *testing.T) {
	img := makePreview(32, 32, func(x, y int) uint8 { return 255 })
	h1 := Encode(img)
	h2 := Encode(img)
	require.NotEmpty(t, h1)
	assert.Equal(t, h1, h2)
}

func TestEncodeSizeRange(t *testing.T) {
	img := makePreview(64, 48, func(x, y int) uint8 { return 255 })
	hash := Encode(img)
	assert.GreaterOrEqual(t, len(hash), 5)
	assert.LessOrEqual(t, len(hash), 60)
}

func TestEncodeSmallerThanMaxDimUsesDirectExtraction(t *testing.T) {
	img := makePreview(16, 12, func(x, y int) uint8 { return 255 })
	hash := Encode(img)
	assert.NotEmpty(t, hash)
}

func TestEncodeTransparentImageGrowsHeader(t *testing.T) {
	opaque := makePreview(20, 20, func(x, y int) uint8 { return 255 })
	transparent := makePreview(20, 20, func(x, y int) uint8 { return uint8(x * 12 % 256) })

	hOpaque := Encode(opaque)
	hTransparent := Encode(transparent)
	// The alpha header adds two bytes; for a square image the alpha AC
	// coefficients take the place of the luminance ones dropped by the
	// smaller alpha-case budget, so the AC payload length is unchanged.
	assert.Greater(t, len(hTransparent), len(hOpaque))
}

func TestEncodeRejectsInvalidBuffer(t *testing.T) {
	bad := &colorcore.PreviewImage{Width: 2, Height: 2, RGBA8: []uint8{0, 0, 0, 255}}
	assert.Nil(t, Encode(bad))
}
