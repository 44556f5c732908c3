package colorcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity1DShaperProperty2(t *testing.T) {
	const n = 8
	shaper := make([][3]float32, n)
	for i := 0; i < n; i++ {
		v := float32(i) / float32(n-1)
		shaper[i] = [3]float32{v, v, v}
	}
	lut, err := NewLutTable(shaper, nil)
	assert.NoError(t, err)

	for _, x := range [][3]float32{{0, 0, 0}, {0.2, 0.4, 0.8}, {1, 1, 1}} {
		got := lut.Apply(x)
		assert.InDelta(t, x[0], got[0], 1e-6)
		assert.InDelta(t, x[1], got[1], 1e-6)
		assert.InDelta(t, x[2], got[2], 1e-6)
	}
}

func TestIdentity3DCubeProperty1(t *testing.T) {
	for _, n := range []int{2, 3, 9} {
		cube := make([][3]float32, n*n*n)
		for b := 0; b < n; b++ {
			for g := 0; g < n; g++ {
				for r := 0; r < n; r++ {
					idx := b*n*n + g*n + r
					cube[idx] = [3]float32{
						float32(r) / float32(n-1),
						float32(g) / float32(n-1),
						float32(b) / float32(n-1),
					}
				}
			}
		}
		lut, err := NewLutTable(nil, cube)
		assert.NoError(t, err)

		for _, x := range [][3]float32{{0, 0, 0}, {0.37, 0.61, 0.05}, {1, 1, 1}, {0.999, 0.001, 0.5}} {
			got := lut.Apply(x)
			assert.InDeltaf(t, x[0], got[0], 1e-6, "n=%d", n)
			assert.InDeltaf(t, x[1], got[1], 1e-6, "n=%d", n)
			assert.InDeltaf(t, x[2], got[2], 1e-6, "n=%d", n)
		}
	}
}

func TestScenarioS3CubeCornerOrder(t *testing.T) {
	// size-2 cube listing the eight unit-cube corners, r-fastest order.
	cube := [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	lut, err := NewLutTable(nil, cube)
	assert.NoError(t, err)

	got := lut.Apply([3]float32{0.2, 0.3, 0.4})
	assert.InDelta(t, 0.2, got[0], 1e-6)
	assert.InDelta(t, 0.3, got[1], 1e-6)
	assert.InDelta(t, 0.4, got[2], 1e-6)
}

func TestScenarioS2OneDShaperIdentity(t *testing.T) {
	lut, err := ParseCube(strings.NewReader("LUT_1D_SIZE 2\n0.0 0.0 0.0\n1.0 1.0 1.0\n"))
	assert.NoError(t, err)
	got := lut.Apply([3]float32{0.2, 0.4, 0.8})
	assert.InDelta(t, 0.2, got[0], 1e-6)
	assert.InDelta(t, 0.4, got[1], 1e-6)
	assert.InDelta(t, 0.8, got[2], 1e-6)
}

func TestRejectsMissingBothTables(t *testing.T) {
	_, err := NewLutTable(nil, nil)
	assert.Error(t, err)
}

func TestRejectsMismatchedCubeLength(t *testing.T) {
	_, err := NewLutTable(nil, make([][3]float32, 5))
	assert.Error(t, err)
}
