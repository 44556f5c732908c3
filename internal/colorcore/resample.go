package colorcore

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Resize resamples src to fit within maxSize on its longer dimension,
// operating entirely in linear light. Values are never clamped: HDR
// highlights may exceed 1.0 and Lanczos ringing may go negative, both
// by design (spec.md §4.5). When src already fits, the buffer is
// copied verbatim at scale 1.
func Resize(src *LinearImage, maxSize int, quality Quality) (*LinearImage, error) {
	if !src.Valid() {
		return nil, &InvalidInputError{Msg: "resize: source buffer length does not match width*height*4"}
	}
	if maxSize < 1 {
		return nil, &InvalidInputError{Msg: "resize: max_size must be >= 1"}
	}

	scale := 1.0
	if src.Width > maxSize || src.Height > maxSize {
		scale = math.Min(float64(maxSize)/float64(src.Width), float64(maxSize)/float64(src.Height))
	}
	outW := maxInt(1, roundInt(float64(src.Width)*scale))
	outH := maxInt(1, roundInt(float64(src.Height)*scale))

	if scale == 1.0 && outW == src.Width && outH == src.Height {
		pixels := make([]float32, len(src.Pixels))
		copy(pixels, src.Pixels)
		return &LinearImage{Width: outW, Height: outH, Pixels: pixels}, nil
	}

	dst := &LinearImage{Width: outW, Height: outH, Pixels: make([]float32, 4*outW*outH)}

	switch quality {
	case High:
		resizeLanczos3(src, dst, scale)
	default:
		resizeBilinear(src, dst, scale)
	}
	return dst, nil
}

func roundInt(v float64) int { return int(math.Round(v)) }
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// resizeBilinear fills dst by partitioning output rows across a
// bounded worker pool; each worker only ever writes its own
// non-overlapping rows (spec.md §5 ordering guarantee).
func resizeBilinear(src, dst *LinearImage, scale float64) {
	parallelRows(dst.Height, func(oy int) {
		sy := float64(oy) / scale
		y0 := clampi(int(math.Floor(sy)), 0, src.Height-1)
		y1 := clampi(y0+1, 0, src.Height-1)
		ty := float32(clampf(sy-float64(y0), 0, 1))

		for ox := 0; ox < dst.Width; ox++ {
			sx := float64(ox) / scale
			x0 := clampi(int(math.Floor(sx)), 0, src.Width-1)
			x1 := clampi(x0+1, 0, src.Width-1)
			tx := float32(clampf(sx-float64(x0), 0, 1))

			p00 := src.At(x0, y0)
			p10 := src.At(x1, y0)
			p01 := src.At(x0, y1)
			p11 := src.At(x1, y1)

			r0 := lerpf(p00.R, p10.R, tx)
			r1 := lerpf(p01.R, p11.R, tx)
			g0 := lerpf(p00.G, p10.G, tx)
			g1 := lerpf(p01.G, p11.G, tx)
			b0 := lerpf(p00.B, p10.B, tx)
			b1 := lerpf(p01.B, p11.B, tx)
			a0 := lerpf(p00.A, p10.A, tx)
			a1 := lerpf(p01.A, p11.A, tx)

			di := (oy*dst.Width + ox) * 4
			dst.Pixels[di+0] = lerpf(r0, r1, ty)
			dst.Pixels[di+1] = lerpf(g0, g1, ty)
			dst.Pixels[di+2] = lerpf(b0, b1, ty)
			dst.Pixels[di+3] = lerpf(a0, a1, ty)
		}
	})
}

// lanczosA is the Lanczos kernel support radius (a=3, spec.md §4.5).
const lanczosA = 3

func lanczosKernel(x float64) float64 {
	if x == 0 {
		return 1
	}
	if x < -lanczosA || x > lanczosA {
		return 0
	}
	piX := math.Pi * x
	return lanczosA * math.Sin(piX) * math.Sin(piX/lanczosA) / (piX * piX)
}

// resizeLanczos3 performs separable Lanczos-3 resampling: horizontal
// pass into an intermediate linear buffer, then vertical pass, both
// operating on f32 linear values with no clamping.
func resizeLanczos3(src, dst *LinearImage, scale float64) {
	// Horizontal pass: src.Height rows, dst.Width columns.
	mid := make([]float32, 4*src.Height*dst.Width)
	parallelRows(src.Height, func(y int) {
		for ox := 0; ox < dst.Width; ox++ {
			sx := (float64(ox) + 0.5) / scale - 0.5
			r, g, b, a := lanczosTapsRow(src, y, sx)
			di := (y*dst.Width + ox) * 4
			mid[di+0] = r
			mid[di+1] = g
			mid[di+2] = b
			mid[di+3] = a
		}
	})

	// Vertical pass: dst.Height rows, dst.Width columns, reading mid.
	parallelRows(dst.Height, func(oy int) {
		sy := (float64(oy) + 0.5) / scale - 0.5
		lo := int(math.Floor(sy)) - lanczosA + 1
		hi := int(math.Floor(sy)) + lanczosA

		for ox := 0; ox < dst.Width; ox++ {
			var r, g, b, a, wsum float64
			for sampleY := lo; sampleY <= hi; sampleY++ {
				cy := clampi(sampleY, 0, src.Height-1)
				w := lanczosKernel(sy - float64(sampleY))
				si := (cy*dst.Width + ox) * 4
				r += float64(mid[si+0]) * w
				g += float64(mid[si+1]) * w
				b += float64(mid[si+2]) * w
				a += float64(mid[si+3]) * w
				wsum += w
			}
			if wsum != 0 {
				r /= wsum
				g /= wsum
				b /= wsum
				a /= wsum
			}
			di := (oy*dst.Width + ox) * 4
			dst.Pixels[di+0] = float32(r)
			dst.Pixels[di+1] = float32(g)
			dst.Pixels[di+2] = float32(b)
			dst.Pixels[di+3] = float32(a)
		}
	})
}

func lanczosTapsRow(src *LinearImage, y int, sx float64) (r, g, b, a float32) {
	lo := int(math.Floor(sx)) - lanczosA + 1
	hi := int(math.Floor(sx)) + lanczosA

	var rr, gg, bb, aa, wsum float64
	for sampleX := lo; sampleX <= hi; sampleX++ {
		cx := clampi(sampleX, 0, src.Width-1)
		w := lanczosKernel(sx - float64(sampleX))
		p := src.At(cx, y)
		rr += float64(p.R) * w
		gg += float64(p.G) * w
		bb += float64(p.B) * w
		aa += float64(p.A) * w
		wsum += w
	}
	if wsum != 0 {
		rr /= wsum
		gg /= wsum
		bb /= wsum
		aa /= wsum
	}
	return float32(rr), float32(gg), float32(bb), float32(aa)
}

// parallelRows partitions [0,rows) into contiguous chunks across a
// bounded worker pool via errgroup, matching the LutGenerator's
// discipline: non-overlapping row ranges, deterministic writes, no
// fan-in merge needed because each worker only ever touches its own
// destination rows.
func parallelRows(rows int, fn func(i int)) {
	workers := runtime.NumCPU()
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < rows; start += chunk {
		start := start
		end := start + chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait() // fn never returns an error
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerpf(a, b, t float32) float32 { return a + (b-a)*t }
