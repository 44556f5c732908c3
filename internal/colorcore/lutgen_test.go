package colorcore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioS6Cancellation(t *testing.T) {
	calls := 0
	_, err := MakeCubeLUT(context.Background(), GenerateParams{
		SrcPrimaries: SrgbD65,
		SrcTF:        Linear,
		DstPrimaries: Rec2020D65,
		DstTF:        Linear,
		CubeSize:     16,
		Clip:         NoClip,
	}, func(pct float64) bool {
		calls++
		return false
	})

	var cancelled *CancelledError
	assert.ErrorAs(t, err, &cancelled)
	assert.GreaterOrEqual(t, calls, 1)
}

func TestScenarioS5MatrixBasisNoClip(t *testing.T) {
	m, err := RgbToRgbMatrix(SrgbD65, Rec2020D65)
	require.NoError(t, err)

	text, err := MakeCubeLUT(context.Background(), GenerateParams{
		SrcPrimaries: SrgbD65,
		SrcTF:        Linear,
		DstPrimaries: Rec2020D65,
		DstTF:        Linear,
		CubeSize:     2,
		Clip:         NoClip,
	}, nil)
	require.NoError(t, err)

	lut, err := ParseCube(strings.NewReader(text))
	require.NoError(t, err)

	basis := [][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for axis, e := range basis {
		got := lut.Apply(e)
		assert.InDelta(t, m.At(0, axis), float64(got[0]), 1e-6)
		assert.InDelta(t, m.At(1, axis), float64(got[1]), 1e-6)
		assert.InDelta(t, m.At(2, axis), float64(got[2]), 1e-6)
	}
}

func TestGenerateDeterministicAcrossRuns(t *testing.T) {
	params := GenerateParams{
		SrcPrimaries: ACEScgD60,
		SrcTF:        Linear,
		DstPrimaries: SrgbD65,
		DstTF:        Srgb,
		CubeSize:     9,
		Clip:         Clip,
	}
	a, err := MakeCubeLUT(context.Background(), params, nil)
	require.NoError(t, err)
	b, err := MakeCubeLUT(context.Background(), params, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCachedGeneratorReusesResult(t *testing.T) {
	c := NewCachedGenerator()
	params := GenerateParams{
		SrcPrimaries: SrgbD65,
		SrcTF:        Srgb,
		DstPrimaries: ACES2065D60,
		DstTF:        Linear,
		CubeSize:     4,
		Clip:         Clip,
	}
	first, err := c.Generate(context.Background(), params, nil)
	require.NoError(t, err)
	second, err := c.Generate(context.Background(), params, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRejectsTooSmallCubeSize(t *testing.T) {
	_, err := MakeCubeLUT(context.Background(), GenerateParams{CubeSize: 1}, nil)
	assert.Error(t, err)
}
