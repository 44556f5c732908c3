package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

func TestGenerateConfigValidAndResolves(t *testing.T) {
	c := GenerateConfig{
		SrcPrimaries: "srgb-d65",
		SrcTF:        "srgb",
		DstPrimaries: "rec2020-d65",
		DstTF:        "linear",
		CubeSize:     17,
		ShaperSize:   1024,
		Clip:         "clip",
	}
	require.NoError(t, c.Validate())

	p, err := c.ToParams()
	require.NoError(t, err)
	assert.Equal(t, colorcore.SrgbD65, p.SrcPrimaries)
	assert.Equal(t, colorcore.Rec2020D65, p.DstPrimaries)
	assert.Equal(t, 17, p.CubeSize)
}

func TestGenerateConfigRejectsUnknownToken(t *testing.T) {
	c := GenerateConfig{
		SrcPrimaries: "not-a-primary",
		SrcTF:        "srgb",
		DstPrimaries: "rec2020-d65",
		DstTF:        "linear",
		CubeSize:     4,
		Clip:         "clip",
	}
	assert.Error(t, c.Validate())
}

func TestGenerateConfigRejectsTooSmallCube(t *testing.T) {
	c := GenerateConfig{
		SrcPrimaries: "srgb-d65",
		SrcTF:        "linear",
		DstPrimaries: "srgb-d65",
		DstTF:        "linear",
		CubeSize:     1,
		Clip:         "noclip",
	}
	assert.Error(t, c.Validate())
}

func TestPreviewConfigValidAndResolves(t *testing.T) {
	c := PreviewConfig{MaxSize: 512, Exposure: 1.5, Gamma: 2.2, Quality: "high"}
	require.NoError(t, c.Validate())

	p, err := c.ToParams()
	require.NoError(t, err)
	assert.Equal(t, colorcore.High, p.Quality)
	assert.Equal(t, 512, p.MaxSize)
}

func TestPreviewConfigRejectsZeroMaxSize(t *testing.T) {
	c := PreviewConfig{MaxSize: 0, Quality: "fast"}
	assert.Error(t, c.Validate())
}
