package resolve

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Normalize rewrites one raw scan filename into the canonical
// <id>-<channel>[-<scan>].<ext> form. It is a pure string transform,
// and a no-op on names that are already canonical.
func Normalize(name string) string {
	// Fold every whitespace run into a single '-'
	name = strings.Join(strings.Fields(name), "-")

	name = detachTrailingDigits(name)
	name = splitLeadingID(name)

	return name
}

// detachTrailingDigits makes sure a scan index at the end of the stem
// sits in its own '-'-delimited token, e.g. "01-blue2.tif" -> "01-blue-2.tif".
func detachTrailingDigits(name string) string {
	stem, ext := splitExt(name)

	i := len(stem)
	for i > 0 && stem[i-1] >= '0' && stem[i-1] <= '9' {
		i--
	}
	if i == len(stem) || i == 0 {
		// No trailing digits, or the stem is all digits (bare id)
		return name
	}

	digits := stem[i:]
	head := strings.TrimSuffix(stem[:i], "-")
	return head + "-" + digits + ext
}

// splitLeadingID makes sure the numeric image id is its own leading
// token, e.g. "01red-2.tif" -> "01-red-2.tif".
func splitLeadingID(name string) string {
	stem, ext := splitExt(name)

	tokens := strings.Split(stem, "-")
	pfx := tokens[0]
	if isDigits(pfx) {
		return name
	}

	i := 0
	for i < len(pfx) && pfx[i] >= '0' && pfx[i] <= '9' {
		i++
	}
	if i == 0 {
		// No leading numeral run, nothing we can split on
		return name
	}

	rebuilt := []string{pfx[:i], pfx[i:]}
	rebuilt = append(rebuilt, tokens[1:]...)
	return strings.Join(rebuilt, "-") + ext
}

// splitExt splits "01-red.tif" into ("01-red", ".tif"). A name with no
// dot has an empty extension.
func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if ! unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// A Rename is one old->new filename pair produced by normalization.
// Pairs whose name was already canonical have Old == New.
type Rename struct {
	Old string
	New string
}

// NormalizeAll pairs every raw filename with its canonical form,
// preserving input order.
func NormalizeAll(names []string) []Rename {
	renames := make([]Rename, 0, len(names))
	for _, n := range names {
		renames = append(renames, Rename{Old: n, New: Normalize(n)})
	}
	return renames
}

// ApplyRenames performs the on-disk renames in dir, sequentially, and
// returns the post-rename filenames. A rename whose target already
// exists is skipped rather than overwriting data; the skipped file is
// left untouched on disk and excluded from the rest of the run, since
// its raw name may not survive classification. A log line records each
// skip.
func ApplyRenames(dir string, renames []Rename, logger *log.Logger) ([]string, error) {
	names := make([]string, 0, len(renames))

	for _, rn := range renames {
		if rn.Old == rn.New {
			names = append(names, rn.New)
			continue
		}

		target := filepath.Join(dir, rn.New)
		if _, err := os.Stat(target); err == nil {
			logger.Printf("Skipping rename '%s' -> '%s': target already exists; '%s' sits out this run\n", rn.Old, rn.New, rn.Old)
			continue
		} else if ! os.IsNotExist(err) {
			return nil, fmt.Errorf("stat '%s': %v", target, err)
		}

		if err := os.Rename(filepath.Join(dir, rn.Old), target); err != nil {
			return nil, fmt.Errorf("rename '%s' -> '%s': %v", rn.Old, rn.New, err)
		}
		names = append(names, rn.New)
	}

	return names, nil
}
