package merge

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junckerlab/channel-merge/pkg/igrid"
)

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	c.SrcDir = "."
	require.NoError(t, c.Finalize())

	assert.Equal(t, "merged_corrected", c.OutDir)
	assert.Equal(t, 50.0, c.Sigma)
	assert.Equal(t, MethodSubtract, c.CorrMethod)
	assert.Equal(t, igrid.BoundaryNearest, c.BoundaryMode)
	assert.Equal(t, ".tif", c.Ext)
	assert.Greater(t, c.Workers, 0)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		wantErr string
	}{
		{func(c *Config) { c.SrcDir = "" }, "source directory"},
		{func(c *Config) { c.Sigma = 0 }, "sigma"},
		{func(c *Config) { c.Sigma = -3 }, "sigma"},
		{func(c *Config) { c.Method = "multiply" }, "unsupported correction method"},
		{func(c *Config) { c.Boundary = "soft" }, "boundary"},
	}

	for _, tc := range tests {
		c := NewConfig()
		c.SrcDir = "."
		tc.mutate(&c)
		err := c.Finalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.wantErr)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "merge.yaml")
	contents := []byte("srcdir: /data/plate-07\nsigma: 25.5\nmethod: divide\nboundary: reflect\nworkers: 2\n")
	require.NoError(t, os.WriteFile(path, contents, 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, c.Finalize())

	assert.Equal(t, "/data/plate-07", c.SrcDir)
	assert.Equal(t, 25.5, c.Sigma)
	assert.Equal(t, MethodDivide, c.CorrMethod)
	assert.Equal(t, igrid.BoundaryReflect, c.BoundaryMode)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, "merged_corrected", c.OutDir, "unset fields keep their defaults")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
