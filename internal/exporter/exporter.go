// Package exporter turns a colorcore.PreviewImage into bytes on disk.
// It mirrors the teacher's internal/encoder Encoder/Registry pattern,
// retargeted from arbitrary image.Image variants to the one 8-bit
// display-referred type the preview pipeline produces.
package exporter

import (
	"image"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

// Encoder encodes a PreviewImage to one output format.
type Encoder interface {
	Format() string
	Extension() string
	Encode(img *colorcore.PreviewImage, quality int) ([]byte, error)
}

// toNRGBA converts a PreviewImage's interleaved, non-premultiplied
// buffer into a stdlib image.NRGBA without a per-pixel color.Color
// allocation — PreviewImage.RGBA8 is already laid out the way
// image.NRGBA expects.
func toNRGBA(img *colorcore.PreviewImage) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.RGBA8)
	return out
}
