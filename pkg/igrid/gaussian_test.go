package igrid

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.5, 1.0, 5.0, 50.0} {
		k := gaussianKernel(sigma)
		sum := 0.0
		for _, v := range k {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "sigma %f", sigma)
		assert.Equal(t, k[0], k[len(k)-1], "kernel must be symmetric")
	}
}

func TestGaussianBlurPreservesFlatField(t *testing.T) {
	// With nearest extension, a uniform field blurs to itself.
	g := New(16, 12)
	for y := 0; y < g.Dy(); y++ {
		for x := 0; x < g.Dx(); x++ {
			g.Set(x, y, 0.25)
		}
	}

	b := g.GaussianBlur(2.0, BoundaryNearest)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			assert.InDelta(t, 0.25, b.Get(x, y), 1e-9)
		}
	}
}

func TestGaussianBlurConstantDimsEdges(t *testing.T) {
	// Constant(0) padding pulls edge values down; the center of a big
	// flat field stays put.
	g := New(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			g.Set(x, y, 1.0)
		}
	}

	b := g.GaussianBlur(3.0, BoundaryConstant)
	assert.Less(t, b.Get(0, 0), 0.5)
	assert.InDelta(t, 1.0, b.Get(32, 32), 1e-6)
}

func TestGaussianBlurDeterministic(t *testing.T) {
	g := New(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			g.Set(x, y, float64((x*31+y*17)%255)/255.0)
		}
	}

	a := g.GaussianBlur(5.0, BoundaryNearest)
	b := g.GaussianBlur(5.0, BoundaryNearest)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			assert.Equal(t, a.Get(x, y), b.Get(x, y))
		}
	}
}

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		i    int
		mode BoundaryMode
		want int
	}{
		{-1, BoundaryConstant, -1},
		{4, BoundaryConstant, -1},
		{-3, BoundaryNearest, 0},
		{7, BoundaryNearest, 3},
		{-1, BoundaryReflect, 0},
		{-2, BoundaryReflect, 1},
		{4, BoundaryReflect, 3},
		{-1, BoundaryMirror, 1},
		{4, BoundaryMirror, 2},
		{-1, BoundaryWrap, 3},
		{4, BoundaryWrap, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, resolveIndex(tc.i, 4, tc.mode), "i=%d mode=%s", tc.i, tc.mode)
	}
}

func TestParseBoundaryMode(t *testing.T) {
	m, err := ParseBoundaryMode("nearest")
	require.NoError(t, err)
	assert.Equal(t, BoundaryNearest, m)

	_, err = ParseBoundaryMode("quantum")
	assert.Error(t, err)
}

func TestSubtractClamped(t *testing.T) {
	a, b := New(2, 1), New(2, 1)
	a.Set(0, 0, 0.5)
	a.Set(1, 0, 0.2)
	b.Set(0, 0, 0.3)
	b.Set(1, 0, 0.4)

	out := a.SubtractClamped(b)
	assert.InDelta(t, 0.2, out.Get(0, 0), 1e-12)
	assert.Equal(t, 0.0, out.Get(1, 0), "negative intensities clamp to zero")
}

func TestDivideClampsZeroBackground(t *testing.T) {
	a, b := New(1, 1), New(1, 1)
	a.Set(0, 0, 0.5)
	b.Set(0, 0, 0.0)

	out := a.Divide(b)
	assert.Equal(t, 0.5/DivideEps, out.Get(0, 0))
}
