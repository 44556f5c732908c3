package exporter

import (
	"fmt"
	"strings"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
	"github.com/sugi-cho/EXR-Tool/internal/hasher"
)

// Registry holds every available Encoder, keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry builds a registry with PNG, WebP, and JPEG registered.
// Unlike the teacher's registry, nothing here probes for an external
// binary: every encoder is a pure-Go library dependency, so all three
// are always available.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{&PNGEncoder{}, &WebPEncoder{}, &JPEGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

func (r *Registry) Available() []string {
	var out []string
	for _, f := range []string{"png", "webp", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) String() string {
	return fmt.Sprintf("exporters: %s", strings.Join(r.Available(), ", "))
}

// Output is one encoded PreviewImage variant, content-addressed by the
// same xxHash64 scheme the teacher uses for asset filenames.
type Output struct {
	Format    string
	Extension string
	Data      []byte
	Hash      string
}

// Encode runs every requested format through the registry and returns
// one Output per format that is both registered and successfully
// encoded. Unknown formats are skipped rather than erroring, matching
// the teacher's ResolveFormats leniency.
func Encode(r *Registry, img *colorcore.PreviewImage, formats []string, quality int) []Output {
	var outputs []Output
	for _, f := range formats {
		enc := r.Get(f)
		if enc == nil {
			continue
		}
		data, err := enc.Encode(img, quality)
		if err != nil {
			continue
		}
		outputs = append(outputs, Output{
			Format:    enc.Format(),
			Extension: enc.Extension(),
			Data:      data,
			Hash:      hasher.ContentHash(data, 16),
		})
	}
	return outputs
}
