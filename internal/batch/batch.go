// Package batch walks a directory of raster sources and runs each one
// through loader, colorcore.Resize/Preview/ComputeStats, exporter, and
// placeholder to produce a JSON report plus a tree of encoded variants
// on disk — the batch entry point named in spec.md's domain stack.
package batch

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
	"github.com/sugi-cho/EXR-Tool/internal/exporter"
	"github.com/sugi-cho/EXR-Tool/internal/loader"
	"github.com/sugi-cho/EXR-Tool/internal/placeholder"
	"github.com/sugi-cho/EXR-Tool/internal/profile"
	"github.com/sugi-cho/EXR-Tool/internal/reportlog"
)

// Config holds every parameter for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	HistBins  int // 0 disables the per-asset histogram summary
}

// Driver orchestrates a batch run.
type Driver struct {
	cfg      Config
	registry *exporter.Registry
	log      *reportlog.Logger
}

// New builds a configured Driver. log may be nil, in which case
// progress is not recorded anywhere.
func New(cfg Config, log *reportlog.Logger) *Driver {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if log == nil {
		log = reportlog.New(reportlog.Config{})
	}
	return &Driver{cfg: cfg, registry: exporter.NewRegistry(), log: log}
}

// Run executes the full batch over ctx and returns the assembled
// report. Per-asset failures are recorded in the report and logged,
// but don't fail the run unless every source failed.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	sources, err := ScanImages(d.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no raster sources found in %s", d.cfg.InputDir)
	}

	results := make([]assetResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = d.processSource(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	report := NewReport(d.cfg.Profile.Name, d.cfg.OutputDir)
	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			d.log.Warn(r.key, r.err)
			continue
		}
		report.Assets[r.key] = r.asset
		d.log.Progress(r.key, len(r.asset.Variants))
	}

	if failed == len(sources) {
		return nil, fmt.Errorf("all %d sources failed to process", failed)
	}

	report.RunInfo = &RunInfo{Workers: d.cfg.Workers}
	report.ComputeStats()
	report.Stats.Failed = failed
	return report, nil
}

// assetResult is the outcome of processing a single source.
type assetResult struct {
	key   string
	asset Asset
	err   error
}

// processSource decodes one source, generates its placeholder and
// optional histogram summary, then produces one preview per profile
// size and format.
func (d *Driver) processSource(src Source) assetResult {
	result := assetResult{key: src.Key}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	linear, _, err := loader.Load(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	hasAlpha := detectAlpha(linear)
	sizes := d.cfg.Profile.EffectiveSizes(maxInt(linear.Width, linear.Height))

	result.asset = Asset{
		Source: SourceInfo{
			Width:    linear.Width,
			Height:   linear.Height,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: hasAlpha,
		},
		AspectRatio: float64(linear.Width) / float64(linear.Height),
	}

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		os.MkdirAll(filepath.Join(d.cfg.OutputDir, keyDir), 0o755)
	}

	for i, maxSize := range sizes {
		preview, err := colorcore.Preview(linear, colorcore.PreviewParams{
			MaxSize:  maxSize,
			Exposure: d.cfg.Profile.Exposure,
			Gamma:    d.cfg.Profile.Gamma,
			Quality:  d.cfg.Profile.Tier,
		})
		if err != nil {
			result.err = fmt.Errorf("preview %s@%d: %w", src.Key, maxSize, err)
			return result
		}

		if i == 0 {
			if hash := placeholder.Encode(preview); hash != nil {
				result.asset.Placeholder = base64.StdEncoding.EncodeToString(hash)
			}
			if d.cfg.HistBins > 0 {
				if hist, err := colorcore.ComputeStats(preview, d.cfg.HistBins); err == nil {
					result.asset.Histogram = summarizeHistogram(hist)
				}
			}
		}

		for _, out := range exporter.Encode(d.registry, preview, d.cfg.Profile.Formats, d.cfg.Profile.Quality) {
			fileName := fmt.Sprintf("%s.%d.%s.%s",
				filepath.Base(src.Key), maxSize, out.Hash[:8], out.Extension)
			relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))
			outPath := filepath.Join(d.cfg.OutputDir, relPath)

			if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
				result.err = fmt.Errorf("write %s: %w", relPath, err)
				return result
			}

			result.asset.Variants = append(result.asset.Variants, Variant{
				Format:  out.Format,
				MaxSize: maxSize,
				Width:   preview.Width,
				Height:  preview.Height,
				Size:    int64(len(out.Data)),
				Hash:    out.Hash,
				Path:    relPath,
			})
		}
	}

	return result
}

// detectAlpha reports whether any pixel's alpha channel is below 1,
// i.e. whether the source actually carries transparency worth
// preserving through a non-JPEG format.
func detectAlpha(img *colorcore.LinearImage) bool {
	for i := 3; i < len(img.Pixels); i += 4 {
		if img.Pixels[i] < 1 {
			return true
		}
	}
	return false
}

func summarizeHistogram(h *colorcore.Histogram) *HistogramSummary {
	return &HistogramSummary{
		Bins:  len(h.R),
		PeakR: peakBin(h.R),
		PeakG: peakBin(h.G),
		PeakB: peakBin(h.B),
	}
}

func peakBin(counts []uint32) int {
	peak := 0
	for i, c := range counts {
		if c > counts[peak] {
			peak = i
		}
	}
	return peak
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
