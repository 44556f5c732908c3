package colorcore

import "math"

// ToneMapFunc is an optional hook applied to linear RGB immediately
// before the LUT step (BeforeLut — spec.md §9 resolves the original's
// ambiguous ordering). No built-in operator is provided; nil changes
// nothing (spec.md §1 Non-goals: no tone-mapping operators required).
type ToneMapFunc func(r, g, b float32) (float32, float32, float32)

// PreviewParams configures one Preview call.
type PreviewParams struct {
	MaxSize  int
	Exposure float32 // stops; RGB *= 2^Exposure
	Gamma    float32 // channel^(1/Gamma) when Gamma > 1e-4, else passthrough
	Lut      *LutTable
	Quality  Quality
	ToneMap  ToneMapFunc // optional, applied BeforeLut
}

// Preview resizes src to fit MaxSize, then applies exposure, optional
// tone-map, optional LUT, gamma, and sRGB encoding per pixel, producing
// an 8-bit display-referred PreviewImage (spec.md §4.6). Identical
// inputs — including Quality — produce bitwise-identical output across
// runs on IEEE-754-conformant platforms (spec.md §4.6, property 5).
func Preview(src *LinearImage, p PreviewParams) (*PreviewImage, error) {
	resized, err := Resize(src, p.MaxSize, p.Quality)
	if err != nil {
		return nil, err
	}

	out := &PreviewImage{
		Width:  resized.Width,
		Height: resized.Height,
		RGBA8:  make([]uint8, 4*resized.Width*resized.Height),
	}

	expMul := float32(math.Pow(2, float64(p.Exposure)))
	invGamma := float32(0)
	useGamma := p.Gamma > 1e-4
	if useGamma {
		invGamma = 1 / p.Gamma
	}

	parallelRows(resized.Height, func(y int) {
		for x := 0; x < resized.Width; x++ {
			i := (y*resized.Width + x) * 4
			r := resized.Pixels[i+0] * expMul
			g := resized.Pixels[i+1] * expMul
			b := resized.Pixels[i+2] * expMul
			a := resized.Pixels[i+3]

			if p.ToneMap != nil {
				r, g, b = p.ToneMap(r, g, b)
			}

			if p.Lut != nil {
				rgb := p.Lut.Apply([3]float32{r, g, b})
				r, g, b = rgb[0], rgb[1], rgb[2]
			}

			if useGamma {
				r = powClamped(r, invGamma)
				g = powClamped(g, invGamma)
				b = powClamped(b, invGamma)
			}

			out.RGBA8[i+0] = srgbEncode8(r)
			out.RGBA8[i+1] = srgbEncode8(g)
			out.RGBA8[i+2] = srgbEncode8(b)
			out.RGBA8[i+3] = quantizeAlpha(a)
		}
	})

	return out, nil
}

// powClamped raises v to the given exponent, clamping negative inputs
// to 0 first (spec.md §4.6 step 3).
func powClamped(v, exp float32) float32 {
	if v < 0 {
		v = 0
	}
	return float32(math.Pow(float64(v), float64(exp)))
}

// srgbEncode8 applies the sRGB OETF and quantizes to [0,255].
func srgbEncode8(v float32) uint8 {
	x := float64(v)
	if x < 0 {
		x = 0
	}
	var srgb float64
	if x <= srgbEncodeBreak {
		srgb = 12.92 * x
	} else {
		srgb = 1.055*math.Pow(x, 1.0/2.4) - 0.055
	}
	if srgb > 1 {
		srgb = 1
	}
	return uint8(math.Floor(srgb*255 + 0.5))
}

func quantizeAlpha(a float32) uint8 {
	x := float64(a)
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return uint8(math.Round(x * 255))
}
