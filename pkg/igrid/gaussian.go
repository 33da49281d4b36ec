package igrid

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// BoundaryMode selects how the gaussian blur reads past the edge of
// the grid.
type BoundaryMode int

const (
	BoundaryConstant BoundaryMode = iota // out-of-range pixels read as 0
	BoundaryNearest                      // edge value extends outwards
	BoundaryReflect                      // (d c b a | a b c d | d c b a)
	BoundaryMirror                       // (d c b | a b c d | c b a)
	BoundaryWrap                         // periodic
)

func (m BoundaryMode)String() string {
	switch m {
	case BoundaryConstant: return "constant"
	case BoundaryNearest:  return "nearest"
	case BoundaryReflect:  return "reflect"
	case BoundaryMirror:   return "mirror"
	case BoundaryWrap:     return "wrap"
	}
	return fmt.Sprintf("boundary(%d)", int(m))
}

// ParseBoundaryMode resolves a config string to a BoundaryMode.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch s {
	case "constant": return BoundaryConstant, nil
	case "nearest":  return BoundaryNearest, nil
	case "reflect":  return BoundaryReflect, nil
	case "mirror":   return BoundaryMirror, nil
	case "wrap":     return BoundaryWrap, nil
	}
	return 0, fmt.Errorf("no boundary mode named '%s'", s)
}

// gaussianKernel builds the normalized 1-D kernel for sigma. The
// radius matches the usual 4-sigma truncation, so results line up with
// the common scientific-stack defaults.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4.0*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}

	k := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		k[i+radius] = math.Exp(-float64(i*i) / (2.0 * sigma * sigma))
	}
	floats.Scale(1.0/floats.Sum(k), k)
	return k
}

// resolveIndex maps a possibly out-of-range coordinate into [0,n) per
// the boundary mode. BoundaryConstant returns -1, meaning "read 0".
func resolveIndex(i, n int, mode BoundaryMode) int {
	if i >= 0 && i < n {
		return i
	}

	switch mode {
	case BoundaryConstant:
		return -1
	case BoundaryNearest:
		if i < 0 {
			return 0
		}
		return n - 1
	case BoundaryReflect:
		// period 2n: ...d c b a | a b c d | d c b a...
		i = mod(i, 2*n)
		if i >= n {
			i = 2*n - 1 - i
		}
		return i
	case BoundaryMirror:
		// period 2n-2: ...c b | a b c d | c b...
		if n == 1 {
			return 0
		}
		i = mod(i, 2*n-2)
		if i >= n {
			i = 2*n - 2 - i
		}
		return i
	case BoundaryWrap:
		return mod(i, n)
	}
	return -1
}

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// GaussianBlur convolves the grid with a separable gaussian of the
// given sigma. The blur estimates the smooth illumination background:
// big sigmas wash out every feature but keep the large-scale intensity
// trend.
func (g Grid)GaussianBlur(sigma float64, mode BoundaryMode) Grid {
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	width, height := g.Dx(), g.Dy()

	//--- X pass, build up in T
	T := g.NewFromThis()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				if xi := resolveIndex(x+k, width, mode); xi >= 0 {
					acc += kernel[k+radius] * g.Get(xi, y)
				}
			}
			T.Set(x, y, acc)
		}
	}

	//--- Y pass, read from T and generate output
	out := g.NewFromThis()
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				if yi := resolveIndex(y+k, height, mode); yi >= 0 {
					acc += kernel[k+radius] * T.Get(x, yi)
				}
			}
			out.Set(x, y, acc)
		}
	}

	return out
}
