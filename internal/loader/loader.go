// Package loader decodes ordinary 8-bit raster files into
// colorcore.LinearImage. It stands in for the OpenEXR loader named in
// the core's scope but deliberately left external (see spec.md §1): the
// CLI and golden tests need *something* to feed colorcore.Resize and
// colorcore.Preview, and a raster file sRGB-decoded to linear light
// exercises exactly the same data model an EXR frame would.
package loader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

// Load decodes r using whichever registered image.Decode format matches
// (PNG, JPEG, GIF, BMP, TIFF, WebP — the formats pipeline/processor.go's
// teacher decodes, minus AVIF), sRGB-decodes every channel, and returns
// a LinearImage. Alpha is passed through unencoded, matching spec.md §3's
// LinearImage contract that alpha is never gamma-adjusted.
func Load(r io.Reader) (*colorcore.LinearImage, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("loader: decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, "", &colorcore.InvalidInputError{Msg: "loader: decoded image has zero area"}
	}

	pixels := make([]float32, 4*w*h)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			af := float64(a16) / 65535
			var rf, gf, bf float64
			if a16 > 0 {
				rf = float64(r16) / 65535 / af
				gf = float64(g16) / 65535 / af
				bf = float64(b16) / 65535 / af
			}
			pixels[i+0] = float32(colorcore.TfDecode(rf, colorcore.Srgb))
			pixels[i+1] = float32(colorcore.TfDecode(gf, colorcore.Srgb))
			pixels[i+2] = float32(colorcore.TfDecode(bf, colorcore.Srgb))
			pixels[i+3] = float32(af)
			i += 4
		}
	}

	return &colorcore.LinearImage{Width: w, Height: h, Pixels: pixels}, format, nil
}
