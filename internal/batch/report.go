package batch

import (
	"encoding/json"
	"os"
	"time"
)

// SupportedReportVersion is the current report schema version.
const SupportedReportVersion = 1

// Report is the top-level output of a batch run: one JSON document
// describing every source image it touched and the variants produced.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	OutputDir   string           `json:"output_dir"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// RunInfo captures run-time parameters useful for diagnosing a report
// after the fact.
type RunInfo struct {
	Workers int `json:"workers"`
}

// Asset describes one source image and every preview variant
// generated from it.
type Asset struct {
	Source      SourceInfo        `json:"source"`
	Placeholder string            `json:"placeholder"` // base64 placeholder blob, internal/placeholder
	AspectRatio float64           `json:"aspect_ratio"`
	Histogram   *HistogramSummary `json:"histogram,omitempty"`
	Variants    []Variant         `json:"variants"`
}

// SourceInfo holds metadata about the decoded source image.
type SourceInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// HistogramSummary is a cheap per-channel summary of a colorcore.Histogram
// computed against one asset's first (smallest) preview size, rather than the full
// per-bin counts — a batch report stays readable at a glance.
type HistogramSummary struct {
	Bins  int `json:"bins"`
	PeakR int `json:"peak_r"` // bin index with the highest R count
	PeakG int `json:"peak_g"`
	PeakB int `json:"peak_b"`
}

// Variant is one encoded output of an asset at a specific size and format.
type Variant struct {
	Format  string `json:"format"`
	MaxSize int    `json:"max_size"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Size    int64  `json:"size"`
	Hash    string `json:"hash"`
	Path    string `json:"path"`
}

// Stats aggregates run metrics across every asset.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalVariants    int   `json:"total_variants"`
	Failed           int   `json:"failed,omitempty"`
}

// NewReport creates an empty report tagged with the given profile and
// output directory.
func NewReport(profileName, outputDir string) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		OutputDir:   outputDir,
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from r.Assets. Failed
// is carried over unchanged, since failed sources have no asset entry.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed}
	s.TotalAssets = len(r.Assets)
	for _, a := range r.Assets {
		s.TotalInputBytes += a.Source.Size
		s.TotalVariants += len(a.Variants)
		for _, v := range a.Variants {
			s.TotalOutputBytes += v.Size
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file with stable key
// ordering (map iteration aside — encoding/json sorts map[string]...
// keys on marshal).
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
