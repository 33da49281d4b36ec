package resolve

import(
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Whitespace runs fold to '-'
		{"01 red 3.tif", "01-red-3.tif"},
		{"01 red-3.tif", "01-red-3.tif"},
		{"01  red\t3.tif", "01-red-3.tif"},

		// Trailing digits get their own token
		{"01-blue2.tif", "01-blue-2.tif"},
		{"23-green-2.tif", "23-green-2.tif"},

		// A numeric prefix glued to the channel token gets split
		{"01red.tif", "01-red.tif"},
		{"01red-2.tif", "01-red-2.tif"},

		// Already-canonical names pass through untouched
		{"01-red.tif", "01-red.tif"},
		{"23-blue-2.tif", "23-blue-2.tif"},
		{"10-b.tif", "10-b.tif"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := []string{"01 red 3.tif", "01-blue2.tif", "44guleinoiena.tif", "10-bf.tif"}
	for _, r := range raw {
		once := Normalize(r)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent on %q", once)
	}
}

func TestApplyRenamesSkipsCollisions(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	// "01 red-3.tif" normalizes to "01-red-3.tif", which already exists;
	// the rename must be skipped, never overwrite. The skipped file
	// drops out of the run: its raw name would poison classification.
	touch("01-red-3.tif")
	touch("01 red-3.tif")
	touch("02 green.tif")

	renames := NormalizeAll([]string{"01-red-3.tif", "01 red-3.tif", "02 green.tif"})
	names, err := ApplyRenames(dir, renames, log.New(os.Stderr, "", 0))
	require.NoError(t, err)

	assert.Equal(t, []string{"01-red-3.tif", "02-green.tif"}, names)

	// The collision victim is untouched on disk
	_, err = os.Stat(filepath.Join(dir, "01 red-3.tif"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "02-green.tif"))
	assert.NoError(t, err)
}
