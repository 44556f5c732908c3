package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

func makePreview(w, h int) *colorcore.PreviewImage {
	buf := make([]uint8, 4*w*h)
	for i := range buf {
		buf[i] = uint8(i * 37 % 256)
	}
	for i := 3; i < len(buf); i += 4 {
		buf[i] = 255
	}
	return &colorcore.PreviewImage{Width: w, Height: h, RGBA8: buf}
}

func TestPNGEncoderProducesData(t *testing.T) {
	img := makePreview(6, 4)
	data, err := (&PNGEncoder{}).Encode(img, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestWebPEncoderProducesData(t *testing.T) {
	img := makePreview(6, 4)
	data, err := (&WebPEncoder{}).Encode(img, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestJPEGEncoderProducesData(t *testing.T) {
	img := makePreview(8, 8)
	data, err := (&JPEGEncoder{}).Encode(img, 90)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRegistryEncodeSkipsUnknownFormats(t *testing.T) {
	r := NewRegistry()
	img := makePreview(4, 4)
	outs := Encode(r, img, []string{"png", "bogus", "webp"}, 80)
	require.Len(t, outs, 2)
	assert.Equal(t, "png", outs[0].Format)
	assert.Equal(t, "webp", outs[1].Format)
	assert.Len(t, outs[0].Hash, 16)
}
