package colorcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatsBasic(t *testing.T) {
	preview := &PreviewImage{Width: 2, Height: 1, RGBA8: []uint8{
		0, 128, 255, 255,
		255, 0, 0, 255,
	}}
	h, err := ComputeStats(preview, 256)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h.R[0])
	assert.Equal(t, uint32(1), h.R[255])
	assert.Equal(t, uint32(1), h.G[128])
	assert.Equal(t, uint32(1), h.B[255])
}

func TestComputeStatsRejectsFewBins(t *testing.T) {
	preview := &PreviewImage{Width: 1, Height: 1, RGBA8: []uint8{0, 0, 0, 255}}
	_, err := ComputeStats(preview, 1)
	assert.Error(t, err)
}

func TestComputeStatsRejectsInvalidBuffer(t *testing.T) {
	preview := &PreviewImage{Width: 2, Height: 2, RGBA8: []uint8{0, 0, 0, 255}}
	_, err := ComputeStats(preview, 16)
	assert.Error(t, err)
}

func TestComputeStatsBinCountsSumToPixelCount(t *testing.T) {
	preview := &PreviewImage{Width: 3, Height: 3, RGBA8: make([]uint8, 4*9)}
	for i := range preview.RGBA8 {
		preview.RGBA8[i] = uint8(i * 7 % 256)
	}
	h, err := ComputeStats(preview, 16)
	require.NoError(t, err)

	var sum uint32
	for _, c := range h.R {
		sum += c
	}
	assert.Equal(t, uint32(9), sum)
}
