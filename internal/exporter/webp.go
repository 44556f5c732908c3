package exporter

import (
	"bytes"

	nativewebp "github.com/HugoSmits86/nativewebp"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

// WebPEncoder encodes a PreviewImage with the pure-Go, cgo-free
// nativewebp encoder — unlike the teacher's WebPEncoder, which shells
// out to the cwebp binary, this one has no external process or install
// dependency, trading some compression ratio for a self-contained
// binary. Quality is accepted for interface symmetry but the library
// only exposes a lossless mode.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Encode(img *colorcore.PreviewImage, _ int) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, toNRGBA(img), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
