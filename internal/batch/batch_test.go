package batch

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugi-cho/EXR-Tool/internal/profile"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255,
			})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDriverRunProducesReport(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeTestPNG(t, filepath.Join(in, "banner.png"), 64, 32)

	p := profile.Get("minimal")
	d := New(Config{InputDir: in, OutputDir: out, Profile: p, Workers: 2, HistBins: 16}, nil)

	report, err := d.Run(context.Background())
	require.NoError(t, err)

	asset, ok := report.Assets["banner"]
	require.True(t, ok)
	assert.Equal(t, 64, asset.Source.Width)
	assert.Equal(t, 32, asset.Source.Height)
	assert.NotEmpty(t, asset.Placeholder)
	require.NotNil(t, asset.Histogram)
	assert.Equal(t, 16, asset.Histogram.Bins)
	assert.NotEmpty(t, asset.Variants)

	for _, v := range asset.Variants {
		_, err := os.Stat(filepath.Join(out, v.Path))
		assert.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(report, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "minimal", decoded.Profile)
}

func TestDriverRunFailsWhenInputDirEmpty(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	d := New(Config{InputDir: in, OutputDir: out, Profile: profile.Get("minimal")}, nil)
	_, err := d.Run(context.Background())
	assert.Error(t, err)
}

func TestDriverRunPartialFailureStillReports(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeTestPNG(t, filepath.Join(in, "ok.png"), 32, 32)
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.png"), []byte("not a png"), 0o644))

	d := New(Config{InputDir: in, OutputDir: out, Profile: profile.Get("minimal")}, nil)
	report, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stats.Failed)
	_, ok := report.Assets["ok"]
	assert.True(t, ok)
}
