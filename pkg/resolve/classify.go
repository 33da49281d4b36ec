package resolve

import(
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Color is the channel color implied by a filename's channel token.
type Color int

const (
	Red Color = iota
	Green
	Blue
)

func (c Color)String() string {
	switch c {
	case Red:   return "red"
	case Green: return "green"
	case Blue:  return "blue"
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// A Channel is one classified single-color scan file. It is immutable
// once created.
type Channel struct {
	ImageID  string // numeric prefix token, e.g. "01"
	Color    Color
	Filename string
	Scan     int // 0 when the name carries no scan suffix
}

// An Unclassifiable records a filename the classifier could not turn
// into a Channel, and why.
type Unclassifiable struct {
	Filename string
	Reason   string
}

// ClassifyError aggregates every unclassifiable filename found in one
// run. The engine never fails fast on the first bad name; the user
// needs the whole list in one pass.
type ClassifyError struct {
	Files []Unclassifiable
}

func (e *ClassifyError)Error() string {
	lines := make([]string, 0, len(e.Files)+1)
	lines = append(lines, fmt.Sprintf("%d filename(s) could not be classified:", len(e.Files)))
	for _, u := range e.Files {
		lines = append(lines, fmt.Sprintf("  %s: %s", u.Filename, u.Reason))
	}
	return strings.Join(lines, "\n")
}

// Classify maps one normalized, non-brightfield filename to a Channel.
// The channel token is the text between the first and second '-' (or
// the extension); its first letter, lower-cased, implies the color.
// This is deliberately tolerant of misspellings ("reed" is red) but
// intolerant of tokens starting with an unrelated letter.
func Classify(name string) (Channel, error) {
	stem, _ := splitExt(name)
	tokens := strings.Split(stem, "-")

	if len(tokens) < 2 || tokens[1] == "" {
		return Channel{}, fmt.Errorf("no channel token after the image id")
	}

	ch := Channel{ImageID: tokens[0], Filename: name}

	token := strings.ToLower(tokens[1])
	switch token[0] {
	case 'r': ch.Color = Red
	case 'g': ch.Color = Green
	case 'b': ch.Color = Blue
	default:
		return Channel{}, fmt.Errorf("first letter '%c' of channel token '%s' does not imply a color", token[0], tokens[1])
	}

	if len(tokens) > 2 {
		if n, err := strconv.Atoi(tokens[len(tokens)-1]); err == nil && n > 0 {
			ch.Scan = n
		}
	}

	return ch, nil
}

// ClassifyAll classifies a filtered, sorted list of filenames. If any
// name is unclassifiable it returns a *ClassifyError listing every
// offender; no Channels are returned in that case, since the run must
// abort before image I/O begins.
func ClassifyAll(names []string) ([]Channel, error) {
	channels := make([]Channel, 0, len(names))
	bad := []Unclassifiable{}

	for _, name := range names {
		if ch, err := Classify(name); err != nil {
			bad = append(bad, Unclassifiable{Filename: name, Reason: err.Error()})
		} else {
			channels = append(channels, ch)
		}
	}

	if len(bad) > 0 {
		return nil, &ClassifyError{Files: bad}
	}
	return channels, nil
}

// GroupByImage partitions channels by exact equality of their image id
// token. Exact match matters: the old substring behavior merged id "1"
// into id "101". Returns the map plus its keys in sorted order.
func GroupByImage(channels []Channel) (map[string][]Channel, []string) {
	groups := map[string][]Channel{}
	for _, ch := range channels {
		groups[ch.ImageID] = append(groups[ch.ImageID], ch)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return groups, ids
}
