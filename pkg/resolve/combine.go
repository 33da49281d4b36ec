package resolve

import(
	"fmt"
	"sort"
	"strings"
)

// A Combination is one valid (red, green, blue) triple of channels for
// a given image id, plus the key that uniquely identifies it within
// the run.
type Combination struct {
	Key   string
	Red   Channel
	Green Channel
	Blue  Channel
}

// Filenames returns the member filenames in (R,G,B) order, which is
// the plane order the compositor stacks in.
func (c Combination)Filenames() [3]string {
	return [3]string{c.Red.Filename, c.Green.Filename, c.Blue.Filename}
}

// EnumerateCombinations forms every (red, green, blue) triple for one
// image group: the cartesian product choosing exactly one channel per
// color, in the order the channels were collected. A group missing a
// color yields no combinations at all. The first combination keeps the
// bare image id as its key; the i-th subsequent one (i >= 2) gets
// "<id>-<i>".
func EnumerateCombinations(id string, group []Channel) []Combination {
	var reds, greens, blues []Channel
	for _, ch := range group {
		switch ch.Color {
		case Red:   reds = append(reds, ch)
		case Green: greens = append(greens, ch)
		case Blue:  blues = append(blues, ch)
		}
	}

	if len(reds) == 0 || len(greens) == 0 || len(blues) == 0 {
		return nil
	}

	combos := make([]Combination, 0, len(reds)*len(greens)*len(blues))
	for _, r := range reds {
		for _, g := range greens {
			for _, b := range blues {
				key := id
				if n := len(combos); n > 0 {
					key = fmt.Sprintf("%s-%d", id, n+1)
				}
				combos = append(combos, Combination{Key: key, Red: r, Green: g, Blue: b})
			}
		}
	}

	return combos
}

// OutputName derives the composite filename from a combination key:
// "01" becomes "01-rgb.tif", "01-2" becomes "01-rgb-2.tif".
func OutputName(key, ext string) string {
	if i := strings.Index(key, "-"); i >= 0 {
		return key[:i] + "-rgb" + key[i:] + ext
	}
	return key + "-rgb" + ext
}

// DropBrightfield removes every name containing the "-bf" marker and
// returns the survivors lexicographically sorted, so everything
// downstream enumerates in a reproducible order.
func DropBrightfield(names []string) []string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if ! strings.Contains(n, "-bf") {
			kept = append(kept, n)
		}
	}
	sort.Strings(kept)
	return kept
}

// Resolve runs the whole post-rename engine: brightfield exclusion,
// classification (aggregating every unclassifiable name into one
// error), grouping by exact image id, and combination enumeration.
// The returned slice is ordered by image id, then enumeration order.
// emptyGroups lists the ids that had channels but produced no
// combinations, so the caller can log them.
func Resolve(names []string) (combos []Combination, emptyGroups []string, err error) {
	names = DropBrightfield(names)

	channels, err := ClassifyAll(names)
	if err != nil {
		return nil, nil, err
	}

	groups, ids := GroupByImage(channels)
	for _, id := range ids {
		cs := EnumerateCombinations(id, groups[id])
		if len(cs) == 0 {
			emptyGroups = append(emptyGroups, id)
			continue
		}
		combos = append(combos, cs...)
	}

	return combos, emptyGroups, nil
}
