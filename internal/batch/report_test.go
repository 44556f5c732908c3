package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportComputeStats(t *testing.T) {
	r := NewReport("minimal", "/tmp/out")
	r.Assets["banner"] = Asset{
		Source:   SourceInfo{Width: 100, Height: 50, Size: 1000},
		Variants: []Variant{{Format: "webp", Size: 200}, {Format: "jpeg", Size: 300}},
	}
	r.ComputeStats()

	assert.Equal(t, 1, r.Stats.TotalAssets)
	assert.Equal(t, 2, r.Stats.TotalVariants)
	assert.EqualValues(t, 1000, r.Stats.TotalInputBytes)
	assert.EqualValues(t, 500, r.Stats.TotalOutputBytes)
}

func TestWriteJSONRoundtrip(t *testing.T) {
	r := NewReport("web-preview", "/tmp/out")
	r.Assets["logo"] = Asset{
		Source:      SourceInfo{Width: 64, Height: 64, Format: "png", Size: 500},
		Placeholder: "YWJj",
		AspectRatio: 1,
	}
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SupportedReportVersion, decoded.Version)
	assert.Equal(t, "web-preview", decoded.Profile)
	assert.Equal(t, "YWJj", decoded.Assets["logo"].Placeholder)
	assert.Equal(t, 1, decoded.Stats.TotalAssets)
}
