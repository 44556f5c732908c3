package colorcore

import "math"

// Histogram holds per-channel bin counts of a PreviewImage.
type Histogram struct {
	R, G, B []uint32
}

// ComputeStats bins each channel of preview into bins buckets
// (spec.md §4.7): bin = round(channel*(bins-1)/255), clamped to
// bins-1. bins < 2 is rejected as InvalidInput.
func ComputeStats(preview *PreviewImage, bins int) (*Histogram, error) {
	if !preview.Valid() {
		return nil, &InvalidInputError{Msg: "compute_stats: preview buffer length does not match width*height*4"}
	}
	if bins < 2 {
		return nil, &InvalidInputError{Msg: "compute_stats: bins must be >= 2"}
	}

	h := &Histogram{
		R: make([]uint32, bins),
		G: make([]uint32, bins),
		B: make([]uint32, bins),
	}

	scale := float64(bins-1) / 255.0
	n := preview.Width * preview.Height
	for i := 0; i < n; i++ {
		px := i * 4
		h.R[binOf(preview.RGBA8[px+0], scale, bins)]++
		h.G[binOf(preview.RGBA8[px+1], scale, bins)]++
		h.B[binOf(preview.RGBA8[px+2], scale, bins)]++
	}
	return h, nil
}

func binOf(channel uint8, scale float64, bins int) int {
	b := int(math.Round(float64(channel) * scale))
	if b > bins-1 {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
