package merge

import(
	"github.com/junckerlab/channel-merge/pkg/igrid"
)

// Correct removes the uneven illumination from one channel plane. The
// gaussian blur smooths the image until it is devoid of features but
// still carries the large-scale intensity trend - the illumination
// pattern - which is then subtracted from (or divided out of) the
// original.
//
// The correction only ever sees the single channel it is fed. A
// multi-channel-aware correction drawing on sibling scans from the
// same plate might do better; that is future work.
func Correct(x igrid.Grid, cfg Config) igrid.Grid {
	background := x.GaussianBlur(cfg.Sigma, cfg.BoundaryMode)

	if cfg.CorrMethod == MethodDivide {
		return x.Divide(background)
	}
	return x.SubtractClamped(background)
}
