package igrid

import(
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// A Grid is a single-plane grid of float64 intensities, row-major.
// Channel images decode into Grids, and all correction math happens on
// them before the composite is re-encoded.
type Grid struct {
	stride int
	values []float64
}

func New(w, h int) Grid {
	return Grid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g *Grid)NewFromThis() Grid          { return New(g.Dx(), g.Dy()) }
func (g *Grid)Set(x, y int, v float64)    { g.values[g.stride*y + x] = v }
func (g *Grid)Get(x, y int) float64       { return g.values[g.stride*y + x] }
func (g *Grid)Dx() int                    { return g.stride }
func (g *Grid)Dy() int                    { return len(g.values) / g.stride }

// SameShape reports whether two grids have identical dimensions.
func (g *Grid)SameShape(o Grid) bool {
	return g.Dx() == o.Dx() && g.Dy() == o.Dy()
}

// Shape renders the grid's dimensions for diagnostics, e.g. "(512, 512)".
func (g *Grid)Shape() string {
	return fmt.Sprintf("(%d, %d)", g.Dy(), g.Dx())
}

// SubtractClamped returns g - o, with negative results clamped to
// zero: intensities never go negative after background removal.
func (g *Grid)SubtractClamped(o Grid) Grid {
	out := g.NewFromThis()
	for i := range g.values {
		if v := g.values[i] - o.values[i]; v > 0 {
			out.values[i] = v
		}
	}
	return out
}

// DivideEps is the floor applied to divisor pixels in Divide. The
// source material never guarded the zero-background case; clamping to
// a small epsilon is the documented policy here.
const DivideEps = 1e-6

// Divide returns g / o element-wise, with divisor pixels clamped to
// DivideEps.
func (g *Grid)Divide(o Grid) Grid {
	out := g.NewFromThis()
	for i := range g.values {
		d := o.values[i]
		if d < DivideEps {
			d = DivideEps
		}
		out.values[i] = g.values[i] / d
	}
	return out
}

func (g *Grid)Stats() string {
	if len(g.values) == 0 {
		return "grid[empty]"
	}
	return fmt.Sprintf("grid[%dx%d, vals{%f,%f} sum %f]",
		g.Dx(), g.Dy(), floats.Min(g.values), floats.Max(g.values), floats.Sum(g.values))
}
