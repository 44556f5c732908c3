package colorcore

// LutTable is an immutable 1D shaper and/or 3D cube. Safe to share
// across goroutines once built: nothing in this package mutates a
// LutTable after NewLutTable returns it.
//
// Indexing convention (normative, spec.md §3): for integer lattice
// (r,g,b) with r fastest, g next, b slowest, the flat cube index is
// b*N*N + g*N + r. Domain is fixed at [0,1] on every axis.
type LutTable struct {
	shaperSize  int
	shaperTable [][3]float32 // len == shaperSize when present

	cubeSize  int
	cubeTable [][3]float32 // len == cubeSize^3 when present
}

// NewLutTable validates and builds an immutable LutTable. At least one
// of shaper/cube must be present, and provided slices must exactly
// match their declared sizes.
func NewLutTable(shaperTable [][3]float32, cubeTable [][3]float32) (*LutTable, error) {
	shaperSize := len(shaperTable)
	cubeSize := cubeRootSize(len(cubeTable))

	if shaperSize == 0 && len(cubeTable) == 0 {
		return nil, &InvalidInputError{Msg: "lut table must have a shaper, a cube, or both"}
	}
	if len(cubeTable) > 0 && cubeSize*cubeSize*cubeSize != len(cubeTable) {
		return nil, &InvalidInputError{Msg: "cube table length is not a perfect cube"}
	}

	return &LutTable{
		shaperSize:  shaperSize,
		shaperTable: shaperTable,
		cubeSize:    cubeSize,
		cubeTable:   cubeTable,
	}, nil
}

// cubeRootSize returns the integer N such that N^3 == n, or 0 if n == 0.
// It never needs to handle non-cube lengths correctly (the caller
// rejects those); it only needs to find N for n that *is* a cube.
func cubeRootSize(n int) int {
	if n == 0 {
		return 0
	}
	for N := 1; N*N*N <= n; N++ {
		if N*N*N == n {
			return N
		}
	}
	return 0
}

// Apply runs the optional 1D shaper followed by the optional 3D cube,
// in that order, on a single RGB triplet.
func (t *LutTable) Apply(rgb [3]float32) [3]float32 {
	out := rgb
	if t.shaperSize > 0 {
		out = t.sample1D(out)
	}
	if t.cubeSize > 0 {
		out = t.sample3D(out)
	}
	return out
}

// sample1D independently lerps each channel through the shaper table
// using the same clamped, scaled index stream per channel.
func (t *LutTable) sample1D(rgb [3]float32) [3]float32 {
	n := t.shaperSize
	s := float32(n - 1)
	var out [3]float32
	for c := 0; c < 3; c++ {
		x := clamp01(rgb[c]) * s
		i0 := int(x)
		if i0 > n-1 {
			i0 = n - 1
		}
		i1 := i0 + 1
		if i1 > n-1 {
			i1 = n - 1
		}
		frac := x - float32(i0)
		v0 := t.shaperTable[i0][c]
		v1 := t.shaperTable[i1][c]
		out[c] = v0 + (v1-v0)*frac
	}
	return out
}

// sample3D trilinearly interpolates the 3D cube. Inputs at exactly 1.0
// land on the last cell with fraction 0 (no overflow), because the
// scaled coordinate equals N-1 exactly and truncation yields index N-1
// with a zero fractional part.
func (t *LutTable) sample3D(rgb [3]float32) [3]float32 {
	n := t.cubeSize
	s := float32(n - 1)

	rx := clamp01(rgb[0]) * s
	gy := clamp01(rgb[1]) * s
	bz := clamp01(rgb[2]) * s

	x0, tx := splitIndex(rx, n)
	y0, ty := splitIndex(gy, n)
	z0, tz := splitIndex(bz, n)
	x1 := clampIndex(x0+1, n)
	y1 := clampIndex(y0+1, n)
	z1 := clampIndex(z0+1, n)

	c000 := t.cubeTable[t.flatIndex(x0, y0, z0)]
	c100 := t.cubeTable[t.flatIndex(x1, y0, z0)]
	c010 := t.cubeTable[t.flatIndex(x0, y1, z0)]
	c110 := t.cubeTable[t.flatIndex(x1, y1, z0)]
	c001 := t.cubeTable[t.flatIndex(x0, y0, z1)]
	c101 := t.cubeTable[t.flatIndex(x1, y0, z1)]
	c011 := t.cubeTable[t.flatIndex(x0, y1, z1)]
	c111 := t.cubeTable[t.flatIndex(x1, y1, z1)]

	c00 := lerp3(c000, c100, tx)
	c10 := lerp3(c010, c110, tx)
	c01 := lerp3(c001, c101, tx)
	c11 := lerp3(c011, c111, tx)

	c0 := lerp3(c00, c10, ty)
	c1 := lerp3(c01, c11, ty)

	return lerp3(c0, c1, tz)
}

// flatIndex implements the normative r-fastest, g-next, b-slowest
// indexing convention.
func (t *LutTable) flatIndex(x, y, z int) int {
	return z*t.cubeSize*t.cubeSize + y*t.cubeSize + x
}

func splitIndex(v float32, n int) (int, float32) {
	i0 := int(v)
	if i0 > n-1 {
		i0 = n - 1
	}
	return i0, v - float32(i0)
}

func clampIndex(i, n int) int {
	if i > n-1 {
		return n - 1
	}
	return i
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// ShaperSize reports the 1D shaper length, or 0 if absent.
func (t *LutTable) ShaperSize() int { return t.shaperSize }

// CubeSize reports the 3D cube side length N, or 0 if absent.
func (t *LutTable) CubeSize() int { return t.cubeSize }
