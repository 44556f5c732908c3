package exporter

import (
	"bytes"
	"image/png"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

// PNGEncoder losslessly encodes a PreviewImage via the standard library.
// Quality is ignored — PNG has none.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img *colorcore.PreviewImage, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(4 * img.Width * img.Height / 2)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, toNRGBA(img)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
