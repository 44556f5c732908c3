package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/sugi-cho/EXR-Tool/internal/batch"
	"github.com/sugi-cho/EXR-Tool/internal/profile"
	"github.com/sugi-cho/EXR-Tool/internal/reportlog"
)

var (
	batchProfile  string
	batchWorkers  int
	batchHistBins int
	batchLogPath  string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir> <outdir>",
	Short: "Run the preview pipeline over every raster in a directory",
	Long: `Scans dir for raster sources, runs loader -> colorcore.Resize ->
colorcore.Preview -> colorcore.ComputeStats -> exporter per file with a
bounded worker pool, and writes outdir/report.json plus the encoded
variants themselves.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchProfile, "profile", "p", "web-preview", "batch profile: web-preview|web-preview-hq|minimal")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().IntVar(&batchHistBins, "hist-bins", 0, "per-asset histogram summary bins (0 disables it)")
	batchCmd.Flags().StringVar(&batchLogPath, "log", "", "optional rotating progress log path")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := profile.Get(batchProfile)
	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (sizes=%v, formats=%v)", prof.Name, prof.MaxSizes, prof.Formats)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	log := reportlog.New(reportlog.Config{Path: batchLogPath, Verbose: verbose})
	defer log.Close()

	d := batch.New(batch.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   batchWorkers,
		HistBins:  batchHistBins,
	}, log)

	report, err := d.Run(context.Background())
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	reportPath := filepath.Join(absOutput, "report.json")
	if err := batch.WriteJSON(report, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(report, time.Since(start))
	return nil
}

func printBatchReport(r *batch.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  batch complete")
	fmt.Println()

	stats := r.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Variants:    %d\n", stats.TotalVariants)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d assets\n", stats.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", r.RunInfo.Workers)
	}
	fmt.Println()

	if len(r.Assets) > 0 {
		type assetSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []assetSize
		for key, a := range r.Assets {
			var outSum int64
			for _, v := range a.Variants {
				outSum += v.Size
			}
			items = append(items, assetSize{key, a.Source.Size, outSum})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].inputSize > items[j].inputSize })
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original -> optimized):\n", n)
		for _, it := range items[:n] {
			saved := float64(0)
			if it.inputSize > 0 {
				saved = (1 - float64(it.outputSize)/float64(it.inputSize)) * 100
			}
			fmt.Printf("    %-40s %8s -> %8s  (-%.0f%%)\n",
				truncKey(it.key, 40), formatBytes(it.inputSize), formatBytes(it.outputSize), saved)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(r)
	fmt.Printf("  Report: report.json (%s)\n", formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
