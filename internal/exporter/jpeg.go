package exporter

import (
	"bytes"
	"image/jpeg"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

// JPEGEncoder encodes a PreviewImage to JPEG via the standard library.
// Alpha is dropped silently (JPEG has none) — callers exporting
// alpha-bearing previews should prefer PNGEncoder or WebPEncoder.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpeg" }

func (e *JPEGEncoder) Encode(img *colorcore.PreviewImage, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, toNRGBA(img), &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
