package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
	"github.com/sugi-cho/EXR-Tool/internal/config"
	"github.com/sugi-cho/EXR-Tool/internal/exporter"
	"github.com/sugi-cho/EXR-Tool/internal/loader"
)

var (
	previewMaxSize  int
	previewExposure float32
	previewGamma    float32
	previewLutPath  string
	previewQuality  string
	previewThumb    bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <in> <out.png>",
	Short: "Resize a raster to a display-ready 8-bit preview",
	Long: `Decodes in (any raster internal/loader recognizes) to linear light,
resizes it to fit max-size, applies exposure, an optional .cube LUT,
gamma, and sRGB encoding, then writes out as PNG.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewMaxSize, "max-size", 1024, "longer-edge target size")
	previewCmd.Flags().Float32Var(&previewExposure, "exposure", 0, "exposure in stops (RGB *= 2^exposure)")
	previewCmd.Flags().Float32Var(&previewGamma, "gamma", 2.2, "display gamma; 0 disables the gamma stage")
	previewCmd.Flags().StringVar(&previewLutPath, "lut", "", "optional .cube file applied before gamma/sRGB encode")
	previewCmd.Flags().StringVar(&previewQuality, "quality", "fast", "resample tier: fast|high")
	previewCmd.Flags().BoolVar(&previewThumb, "thumb", false, "also write an 1/8-scale uint8 thumbnail sidecar")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	cfg := config.PreviewConfig{
		MaxSize:  previewMaxSize,
		Exposure: previewExposure,
		Gamma:    previewGamma,
		Quality:  previewQuality,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	params, err := cfg.ToParams()
	if err != nil {
		return err
	}

	if previewLutPath != "" {
		lutFile, err := os.Open(previewLutPath)
		if err != nil {
			return fmt.Errorf("open lut: %w", err)
		}
		defer lutFile.Close()
		lut, err := colorcore.ParseCube(lutFile)
		if err != nil {
			return fmt.Errorf("parse lut: %w", err)
		}
		params.Lut = lut
		logVerbose("lut: %s (shaper=%d cube=%d)", previewLutPath, lut.ShaperSize(), lut.CubeSize())
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer in.Close()

	linear, format, err := loader.Load(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	logVerbose("decoded %s as %s (%dx%d)", inPath, format, linear.Width, linear.Height)

	preview, err := colorcore.Preview(linear, params)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	data, err := (&exporter.PNGEncoder{}).Encode(preview, 0)
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%dx%d, %s)\n", outPath, preview.Width, preview.Height, params.Quality)

	if previewThumb {
		if err := writeThumbSidecar(outPath, preview); err != nil {
			return fmt.Errorf("thumb sidecar: %w", err)
		}
	}
	return nil
}

// writeThumbSidecar re-decodes the just-written preview PNG as a
// stdlib image.Image and resizes it with the teacher's own resize
// dependency, keeping the display byte path (image.Image, uint8)
// entirely separate from the scene-linear float path above.
func writeThumbSidecar(previewPath string, preview *colorcore.PreviewImage) error {
	f, err := os.Open(previewPath)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	thumbW := maxInt1(preview.Width/8, 1)
	thumbH := maxInt1(preview.Height/8, 1)
	thumb := imaging.Resize(img, thumbW, thumbH, imaging.Lanczos)

	ext := filepath.Ext(previewPath)
	thumbPath := strings.TrimSuffix(previewPath, ext) + ".thumb" + ext

	out, err := os.Create(thumbPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, thumb); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", thumbPath, thumbW, thumbH)
	return nil
}

func maxInt1(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
