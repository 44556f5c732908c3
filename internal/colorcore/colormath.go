// Package colorcore implements the color-science primitives, LUT
// representation/parsing/generation, linear-space resampling, preview
// pipeline, and histogram computation described for EXR-Tool's core.
//
// The package takes plain Go slices and structs in, returns plain Go
// slices and structs out; it never touches a filesystem, a network
// socket, or a log. Loading OpenEXR files, writing .cube files to disk,
// encoding PNGs, and CLI parsing are all collaborator concerns that live
// one level up, in internal/loader, internal/exporter, and cmd.
package colorcore

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Primaries is a finite, closed set of RGB working spaces. Treat it as
// a sum type: exhaustively switch on it, never compare against a raw
// string past the CLI boundary.
type Primaries int

const (
	SrgbD65 Primaries = iota
	Rec2020D65
	ACEScgD60
	ACES2065D60
)

func (p Primaries) String() string {
	switch p {
	case SrgbD65:
		return "srgb-d65"
	case Rec2020D65:
		return "rec2020-d65"
	case ACEScgD60:
		return "acescg-d60"
	case ACES2065D60:
		return "aces2065-d60"
	default:
		return "unknown"
	}
}

// ParsePrimaries maps a CLI/config token to a Primaries value. This is
// the one mapping table for this enum, per the design notes.
func ParsePrimaries(s string) (Primaries, error) {
	switch s {
	case "srgb-d65", "srgb", "rec709":
		return SrgbD65, nil
	case "rec2020-d65", "rec2020", "bt2020":
		return Rec2020D65, nil
	case "acescg-d60", "acescg", "ap1":
		return ACEScgD60, nil
	case "aces2065-d60", "aces2065-1", "ap0":
		return ACES2065D60, nil
	default:
		return 0, &InvalidInputError{Msg: "unknown primaries: " + s}
	}
}

// TransferFn is the finite set of supported transfer functions.
type TransferFn int

const (
	Linear TransferFn = iota
	Srgb
	Gamma22
	Gamma24
)

func (t TransferFn) String() string {
	switch t {
	case Linear:
		return "linear"
	case Srgb:
		return "srgb"
	case Gamma22:
		return "gamma2.2"
	case Gamma24:
		return "gamma2.4"
	default:
		return "unknown"
	}
}

func ParseTransferFn(s string) (TransferFn, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "srgb":
		return Srgb, nil
	case "gamma2.2", "gamma22":
		return Gamma22, nil
	case "gamma2.4", "gamma24":
		return Gamma24, nil
	default:
		return 0, &InvalidInputError{Msg: "unknown transfer function: " + s}
	}
}

// Quality selects the resampler tier used by Resize and Preview.
type Quality int

const (
	Fast Quality = iota // bilinear
	High                // Lanczos-3
)

func (q Quality) String() string {
	if q == High {
		return "high"
	}
	return "fast"
}

func ParseQuality(s string) (Quality, error) {
	switch s {
	case "fast", "bilinear":
		return Fast, nil
	case "high", "lanczos", "lanczos3":
		return High, nil
	default:
		return 0, &InvalidInputError{Msg: "unknown quality tier: " + s}
	}
}

// ClipMode governs whether LutGenerator clamps destination values to
// [0,1] or leaves them raw (used to round-trip wide-gamut intermediates).
type ClipMode int

const (
	Clip ClipMode = iota
	NoClip
)

func (c ClipMode) String() string {
	if c == NoClip {
		return "noclip"
	}
	return "clip"
}

func ParseClipMode(s string) (ClipMode, error) {
	switch s {
	case "clip":
		return Clip, nil
	case "noclip":
		return NoClip, nil
	default:
		return 0, &InvalidInputError{Msg: "unknown clip mode: " + s}
	}
}

// chromaticities holds the (x,y) coordinates of three colorants plus a
// reference whitepoint. Internal only — callers select a Primaries.
type chromaticities struct {
	rx, ry, gx, gy, bx, by, wx, wy float64
}

var primaryTable = map[Primaries]chromaticities{
	SrgbD65:     {0.640, 0.330, 0.300, 0.600, 0.150, 0.060, 0.3127, 0.3290},
	Rec2020D65:  {0.708, 0.292, 0.170, 0.797, 0.131, 0.046, 0.3127, 0.3290},
	ACEScgD60:   {0.713, 0.293, 0.165, 0.830, 0.128, 0.044, 0.32168, 0.33767},
	ACES2065D60: {0.73470, 0.26530, 0.00000, 1.00000, 0.00010, -0.07700, 0.32168, 0.33767},
}

// Bradford cone-response matrix and its inverse (spec-normative).
var bradfordM = mat.NewDense(3, 3, []float64{
	0.8951, 0.2664, -0.1614,
	-0.7502, 1.7135, 0.0367,
	0.0389, -0.0685, 1.0296,
})

var bradfordMInv = mat.NewDense(3, 3, []float64{
	0.9869929, -0.1470543, 0.1599627,
	0.4323053, 0.5183603, 0.0492912,
	-0.0085287, 0.0400428, 0.9684867,
})

// xyToXYZ converts chromaticity coordinates to an unnormalized XYZ
// tristimulus vector with Y fixed at 1.
func xyToXYZ(x, y float64) [3]float64 {
	return [3]float64{x / y, 1, (1 - x - y) / y}
}

// rgbToXYZMatrix builds the 3x3 matrix that maps linear RGB in the
// primaries p to CIE XYZ.
func rgbToXYZMatrix(p Primaries) (*mat.Dense, error) {
	c := primaryTable[p]
	xr := xyToXYZ(c.rx, c.ry)
	xg := xyToXYZ(c.gx, c.gy)
	xb := xyToXYZ(c.bx, c.by)
	w := xyToXYZ(c.wx, c.wy)

	m := mat.NewDense(3, 3, []float64{
		xr[0], xg[0], xb[0],
		xr[1], xg[1], xb[1],
		xr[2], xg[2], xb[2],
	})

	var mInv mat.Dense
	if err := mInv.Inverse(m); err != nil {
		return nil, errors.Wrapf(err, "internal invariant: rgb_to_xyz_matrix(%s) inversion failed", p)
	}

	wv := mat.NewVecDense(3, w[:])
	var s mat.VecDense
	s.MulVec(&mInv, wv)

	diag := mat.NewDiagDense(3, []float64{s.AtVec(0), s.AtVec(1), s.AtVec(2)})

	var result mat.Dense
	result.Mul(m, diag)
	return &result, nil
}

// bradfordAdapt returns the chromatic adaptation matrix that maps a
// color adapted to srcWhite onto the same color adapted to dstWhite.
func bradfordAdapt(srcWhite, dstWhite [3]float64) *mat.Dense {
	srcLMS := mat.NewVecDense(3, nil)
	srcLMS.MulVec(bradfordM, mat.NewVecDense(3, srcWhite[:]))
	dstLMS := mat.NewVecDense(3, nil)
	dstLMS.MulVec(bradfordM, mat.NewVecDense(3, dstWhite[:]))

	diag := mat.NewDiagDense(3, []float64{
		dstLMS.AtVec(0) / srcLMS.AtVec(0),
		dstLMS.AtVec(1) / srcLMS.AtVec(1),
		dstLMS.AtVec(2) / srcLMS.AtVec(2),
	})

	var tmp, result mat.Dense
	tmp.Mul(diag, bradfordM)
	result.Mul(bradfordMInv, &tmp)
	return &result
}

// RgbToRgbMatrix composes the full src->dst linear RGB conversion: XYZ
// decode in src primaries, optional Bradford adaptation between
// whitepoints, XYZ encode into dst primaries.
func RgbToRgbMatrix(src, dst Primaries) (*mat.Dense, error) {
	ms, err := rgbToXYZMatrix(src)
	if err != nil {
		return nil, err
	}
	md, err := rgbToXYZMatrix(dst)
	if err != nil {
		return nil, err
	}

	cs, cd := primaryTable[src], primaryTable[dst]
	var adapt *mat.Dense
	if cs.wx == cd.wx && cs.wy == cd.wy {
		adapt = mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	} else {
		adapt = bradfordAdapt(xyToXYZ(cs.wx, cs.wy), xyToXYZ(cd.wx, cd.wy))
	}

	var mdInv mat.Dense
	if err := mdInv.Inverse(md); err != nil {
		return nil, errors.Wrapf(err, "internal invariant: rgb_to_rgb_matrix dst=%s inversion failed", dst)
	}

	var tmp, result mat.Dense
	tmp.Mul(&mdInv, adapt)
	result.Mul(&tmp, ms)
	return &result, nil
}

// ApplyMatrix3 applies a 3x3 matrix to an RGB triplet.
func ApplyMatrix3(m *mat.Dense, rgb [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m.At(i, 0)*rgb[0] + m.At(i, 1)*rgb[1] + m.At(i, 2)*rgb[2]
	}
	return out
}

// sRGB piecewise breakpoints (spec-normative, §6).
const (
	srgbDecodeBreak = 0.04045
	srgbEncodeBreak = 0.0031308
)

// TfEncode applies the forward (linear -> encoded) transfer function.
func TfEncode(v float64, tf TransferFn) float64 {
	switch tf {
	case Linear:
		return v
	case Srgb:
		if v <= srgbEncodeBreak {
			return 12.92 * v
		}
		return 1.055*powf64(v, 1.0/2.4) - 0.055
	case Gamma22:
		return powf64(max64(v, 0), 1.0/2.2)
	case Gamma24:
		return powf64(max64(v, 0), 1.0/2.4)
	default:
		return v
	}
}

// TfDecode applies the inverse (encoded -> linear) transfer function.
func TfDecode(v float64, tf TransferFn) float64 {
	switch tf {
	case Linear:
		return v
	case Srgb:
		if v <= srgbDecodeBreak {
			return v / 12.92
		}
		return powf64((v+0.055)/1.055, 2.4)
	case Gamma22:
		return powf64(max64(v, 0), 2.2)
	case Gamma24:
		return powf64(max64(v, 0), 2.4)
	default:
		return v
	}
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// InvalidInputError is returned for malformed CLI/config boundary
// tokens: unknown primaries/transfer/clip/quality, bad dimensions,
// bins < 2, and similar caller mistakes (spec.md §7).
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Msg }
