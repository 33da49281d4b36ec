package merge

import(
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/junckerlab/channel-merge/pkg/igrid"
	"github.com/junckerlab/channel-merge/pkg/resolve"
)

// Stats summarizes one run.
type Stats struct {
	Renamed  int // files whose canonical name differs from the raw one
	Written  int // composites written
	Skipped  int // combinations dropped for shape mismatch
	NoCombos int // image ids with channels but no full rgb triple
}

// ListScans returns the filenames in dir carrying the configured
// extension, unsorted (sorting happens after normalization).
func ListScans(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("readdir '%s': %v", dir, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ResolveDir normalizes and renames every scan file in cfg.SrcDir,
// then resolves the surviving names into combinations. The rename pass
// is strictly sequential and complete before any grouping reads the
// post-rename state.
func ResolveDir(cfg Config, logger *log.Logger) ([]resolve.Combination, *Stats, error) {
	stats := &Stats{}

	raw, err := ListScans(cfg.SrcDir, cfg.Ext)
	if err != nil {
		return nil, stats, err
	}

	renames := resolve.NormalizeAll(raw)
	for _, rn := range renames {
		if rn.Old != rn.New {
			stats.Renamed++
		}
	}

	names, err := resolve.ApplyRenames(cfg.SrcDir, renames, logger)
	if err != nil {
		return nil, stats, err
	}

	combos, empty, err := resolve.Resolve(names)
	if err != nil {
		return nil, stats, err
	}

	for _, id := range empty {
		logger.Printf("Image %s has no complete rgb combination, skipping\n", id)
	}
	stats.NoCombos = len(empty)

	return combos, stats, nil
}

// Run is the whole engine: rename, resolve, correct, stack, write.
// Combinations process concurrently on a pool of cfg.Workers; inside
// one combination the three channel legs also run concurrently, and
// the stack waits on all three. Shape mismatches skip just their own
// combination; an unreadable image cancels the run.
func Run(cfg Config, logger *log.Logger) (*Stats, error) {
	combos, stats, err := ResolveDir(cfg, logger)
	if err != nil {
		return stats, err
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return stats, fmt.Errorf("mkdir '%s': %v", cfg.OutDir, err)
	}

	logger.Printf("Processing images...\n")
	logger.Printf("Writing images to %s\n", cfg.OutDir)

	grp, ctx := errgroup.WithContext(context.Background())
	grp.SetLimit(cfg.Workers)

	results := make(chan bool, len(combos)) // true = written, false = shape skip

	for _, combo := range combos {
		combo := combo
		grp.Go(func() error {
			written, err := processCombination(ctx, cfg, combo, logger)
			if err != nil {
				return err
			}
			results <- written
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return stats, err
	}
	close(results)

	for written := range results {
		if written {
			stats.Written++
		} else {
			stats.Skipped++
		}
	}

	return stats, nil
}

// processCombination runs one combination's read-correct-stack-write
// pipeline. Returns false (and no error) when the corrected planes
// disagree on shape, which skips just this combination.
func processCombination(ctx context.Context, cfg Config, combo resolve.Combination, logger *log.Logger) (bool, error) {
	files := combo.Filenames()
	planes := make([]igrid.Grid, 3)

	legs, legCtx := errgroup.WithContext(ctx)
	for i := 0; i < 3; i++ {
		i := i
		legs.Go(func() error {
			// Once any leg in the run has failed, stop issuing reads
			if err := legCtx.Err(); err != nil {
				return err
			}
			x, err := ReadGray(filepath.Join(cfg.SrcDir, files[i]))
			if err != nil {
				return err
			}
			planes[i] = Correct(x, cfg)
			return nil
		})
	}
	if err := legs.Wait(); err != nil {
		return false, err
	}

	r, g, b := planes[0], planes[1], planes[2]
	if ! r.SameShape(g) || ! r.SameShape(b) {
		logger.Printf("Skipping image # %s. Channels have non uniform shape? R: %s G: %s B: %s\n",
			combo.Key, r.Shape(), g.Shape(), b.Shape())
		return false, nil
	}

	outName := resolve.OutputName(combo.Key, cfg.Ext)
	if err := WriteTIFF(Stack(r, g, b), filepath.Join(cfg.OutDir, outName)); err != nil {
		return false, err
	}

	logger.Printf("Wrote %s\n", outName)
	return true, nil
}
