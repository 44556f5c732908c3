package colorcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGradient(w, h int) *LinearImage {
	pixels := make([]float32, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pixels[i+0] = float32(x) / float32(w-1)
			pixels[i+1] = float32(y) / float32(h-1)
			pixels[i+2] = 0.5
			pixels[i+3] = 1
		}
	}
	return &LinearImage{Width: w, Height: h, Pixels: pixels}
}

func TestResizeCopiesVerbatimWhenWithinBounds(t *testing.T) {
	src := makeGradient(8, 8)
	out, err := Resize(src, 16, Fast)
	require.NoError(t, err)
	assert.Equal(t, src.Width, out.Width)
	assert.Equal(t, src.Height, out.Height)
	assert.Equal(t, src.Pixels, out.Pixels)
}

func TestResizeDownscaleDimensions(t *testing.T) {
	src := makeGradient(400, 100)
	out, err := Resize(src, 100, Fast)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 25, out.Height)
}

func TestResizeNoClampAllowsOutOfRangeValues(t *testing.T) {
	// A sharp edge can produce Lanczos ringing above 1.0 or below 0.0;
	// resize must not clamp it away.
	src := &LinearImage{Width: 4, Height: 1, Pixels: []float32{
		0, 0, 0, 1,
		0, 0, 0, 1,
		2, 2, 2, 1,
		2, 2, 2, 1,
	}}
	out, err := Resize(src, 2, High)
	require.NoError(t, err)
	assert.Len(t, out.Pixels, 4*2*1)
	// The first output pixel undershoots below 0 next to the 0->2 edge.
	assert.Less(t, out.Pixels[0], float32(0))
}

func TestResizeBothQualitiesDeterministic(t *testing.T) {
	src := makeGradient(37, 29)
	for _, q := range []Quality{Fast, High} {
		a, err := Resize(src, 20, q)
		require.NoError(t, err)
		b, err := Resize(src, 20, q)
		require.NoError(t, err)
		assert.Equal(t, a.Pixels, b.Pixels)
	}
}

func TestResizeRejectsInvalidBuffer(t *testing.T) {
	bad := &LinearImage{Width: 2, Height: 2, Pixels: []float32{0, 0, 0}}
	_, err := Resize(bad, 10, Fast)
	assert.Error(t, err)
}
