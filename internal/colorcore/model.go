package colorcore

import "math"

// powf64 is a thin alias kept so the transfer-function formulas in
// colormath.go read close to the spec's mathematical notation.
func powf64(base, exp float64) float64 { return math.Pow(base, exp) }

// LinearImage is a scene-referred, linear-light RGBA32F pixel buffer,
// interleaved R,G,B,A. Values are unbounded: wide-gamut or HDR sources
// may exceed 1.0 or go negative. Alpha defaults to 1.0 when the source
// collaborator has none; premultiplication is never assumed. Read-only
// to every function in this package.
type LinearImage struct {
	Width, Height int
	Pixels        []float32 // len == 4*Width*Height
}

// Valid reports whether the buffer length matches the declared
// dimensions (spec.md §3 invariant).
func (img *LinearImage) Valid() bool {
	return img != nil && img.Width > 0 && img.Height > 0 &&
		len(img.Pixels) == 4*img.Width*img.Height
}

// At returns the pixel at (x,y) as a LinearPixel. Caller must ensure
// bounds; this package's internal loops never call it out of range.
func (img *LinearImage) At(x, y int) LinearPixel {
	i := (y*img.Width + x) * 4
	return LinearPixel{
		R: img.Pixels[i+0],
		G: img.Pixels[i+1],
		B: img.Pixels[i+2],
		A: img.Pixels[i+3],
	}
}

// LinearPixel is a single probed linear-light sample.
type LinearPixel struct {
	R, G, B, A float32
}

// PreviewImage is sRGB-encoded, non-premultiplied 8-bit RGBA, the
// display-referred output of the preview pipeline.
type PreviewImage struct {
	Width, Height int
	RGBA8         []uint8 // len == 4*Width*Height
}

// Valid reports whether the buffer length matches the declared
// dimensions.
func (img *PreviewImage) Valid() bool {
	return img != nil && img.Width >= 1 && img.Height >= 1 &&
		len(img.RGBA8) == 4*img.Width*img.Height
}

// CancelledError is returned by LutGenerator when its progress callback
// returns false. No partial .cube text is surfaced alongside it.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "lut generation cancelled" }

// LutParseError wraps a malformed .cube parse failure (spec.md §7).
type LutParseError struct {
	Msg string
	Err error
}

func (e *LutParseError) Error() string {
	if e.Err != nil {
		return "cube parse error: " + e.Msg + ": " + e.Err.Error()
	}
	return "cube parse error: " + e.Msg
}

func (e *LutParseError) Unwrap() error { return e.Err }
