package colorcore

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc is invoked by MakeCubeLUT after every 1000 computed
// lattice points and once on completion. Returning false requests
// cancellation. Implementations must never call back into this package
// from inside the callback except to return the continue flag
// (spec.md §5).
type ProgressFunc func(percentComplete float64) (continue_ bool)

// GenerateParams is every input to MakeCubeLUT, gathered into one
// struct so CachedGenerator can hash it as a cache key.
type GenerateParams struct {
	SrcPrimaries Primaries
	SrcTF        TransferFn
	DstPrimaries Primaries
	DstTF        TransferFn
	CubeSize     int
	ShaperSize   int
	Clip         ClipMode
}

// MakeCubeLUT computes the 3D (and optional 1D shaper) .cube text for
// a src->dst color pipeline (spec.md §4.4). Cube-body lattice points
// are computed across a bounded worker pool; output is always gathered
// in canonical flat-index order regardless of scheduling.
func MakeCubeLUT(ctx context.Context, p GenerateParams, progress ProgressFunc) (string, error) {
	if p.CubeSize < 2 {
		return "", &InvalidInputError{Msg: "cube_size must be >= 2"}
	}

	m, err := RgbToRgbMatrix(p.SrcPrimaries, p.DstPrimaries)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TITLE \"EXR-Tool %s->%s\"\n", p.SrcPrimaries, p.DstPrimaries)

	if p.ShaperSize > 0 {
		fmt.Fprintf(&buf, "LUT_1D_SIZE %d\n", p.ShaperSize)
		denom := float64(p.ShaperSize - 1)
		if denom <= 0 {
			denom = 1
		}
		for i := 0; i < p.ShaperSize; i++ {
			v := TfDecode(float64(i)/denom, p.SrcTF)
			fmt.Fprintf(&buf, "%.10f %.10f %.10f\n", v, v, v)
		}
	}

	fmt.Fprintf(&buf, "LUT_3D_SIZE %d\n", p.CubeSize)
	fmt.Fprintf(&buf, "DOMAIN_MIN 0 0 0\nDOMAIN_MAX 1 1 1\n")

	n := p.CubeSize
	total := n * n * n
	rows := make([][3]float64, total)

	cancelled, err := computeCubeBody(ctx, m, p, rows, progress)
	if err != nil {
		return "", err
	}
	if cancelled {
		return "", &CancelledError{}
	}

	for _, row := range rows {
		fmt.Fprintf(&buf, "%.10f %.10f %.10f\n", row[0], row[1], row[2])
	}
	return buf.String(), nil
}

// computeCubeBody fans the N^3 lattice points out across a bounded
// worker pool, partitioning by contiguous chunks of flat index so each
// worker's fragment can be written directly into its slot of rows —
// positional gather, no append, deterministic regardless of goroutine
// finish order (spec.md §5).
func computeCubeBody(ctx context.Context, m interface{ At(i, j int) float64 }, p GenerateParams, rows [][3]float64, progress ProgressFunc) (cancelled bool, err error) {
	total := len(rows)
	workers := runtime.NumCPU()
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (total + workers - 1) / workers

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	n := p.CubeSize
	denom := float64(n - 1)
	if denom <= 0 {
		denom = 1
	}

	var done int64
	var mu sync.Mutex
	var cancelRequested atomic.Bool

	reportEvery := func(delta int64) {
		mu.Lock()
		defer mu.Unlock()
		done += delta
		d := done
		if progress != nil && (d%1000 == 0 || d == int64(total)) {
			if !progress(float64(d) / float64(total) * 100) {
				cancelRequested.Store(true)
			}
		}
	}

	for start := 0; start < total; start += chunk {
		start := start
		end := start + chunk
		if end > total {
			end = total
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				r := i % n
				gi := (i / n) % n
				b := i / (n * n)

				rf := float64(r) / denom
				gf := float64(gi) / denom
				bf := float64(b) / denom

				rs := TfDecode(rf, p.SrcTF)
				gs := TfDecode(gf, p.SrcTF)
				bs := TfDecode(bf, p.SrcTF)

				v := [3]float64{
					m.At(0, 0)*rs + m.At(0, 1)*gs + m.At(0, 2)*bs,
					m.At(1, 0)*rs + m.At(1, 1)*gs + m.At(1, 2)*bs,
					m.At(2, 0)*rs + m.At(2, 1)*gs + m.At(2, 2)*bs,
				}

				rd := TfEncode(v[0], p.DstTF)
				gd := TfEncode(v[1], p.DstTF)
				bd := TfEncode(v[2], p.DstTF)
				if p.Clip == Clip {
					rd = clamp01f64(rd)
					gd = clamp01f64(gd)
					bd = clamp01f64(bd)
				}
				rows[i] = [3]float64{rd, gd, bd}

				reportEvery(1)
				if cancelRequested.Load() {
					cancel()
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}
	return cancelRequested.Load(), nil
}

func clamp01f64(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
