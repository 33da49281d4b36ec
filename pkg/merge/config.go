package merge

import(
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v2"

	"github.com/junckerlab/channel-merge/pkg/igrid"
)

/* Example config file ...

srcdir: /data/plate-07
outdir: merged_corrected
sigma: 50.0
boundary: nearest
method: subtract
workers: 4

*/

// CorrectionMethod is how the estimated background combines with the
// original intensities.
type CorrectionMethod int

const (
	MethodSubtract CorrectionMethod = iota
	MethodDivide
)

func (m CorrectionMethod)String() string {
	switch m {
	case MethodSubtract: return "subtract"
	case MethodDivide:   return "divide"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

type Config struct {
	SrcDir   string  `yaml:"srcdir"`
	OutDir   string  `yaml:"outdir"`
	Sigma    float64 `yaml:"sigma"`
	Boundary string  `yaml:"boundary"`
	Method   string  `yaml:"method"`
	Ext      string  `yaml:"ext"`
	Workers  int     `yaml:"workers"`

	// Values we derive in Finalize
	CorrMethod   CorrectionMethod `yaml:"-"`
	BoundaryMode igrid.BoundaryMode `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		OutDir:   "merged_corrected",
		Sigma:    50.0,
		Boundary: "nearest",
		Method:   "subtract",
		Ext:      ".tif",
	}
}

func LoadConfig(filename string) (Config, error) {
	c := NewConfig()

	if contents, err := os.ReadFile(filename); err != nil {
		return c, fmt.Errorf("config read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("config parse '%s': %v", filename, err)
	}

	return c, nil
}

// Finalize does sanity checks and resolves the string-valued options
// into concrete values. Every failure here is fatal before any file is
// touched.
func (c *Config)Finalize() error {
	if c.SrcDir == "" {
		return fmt.Errorf("no source directory given")
	}
	if c.Sigma <= 0 {
		return fmt.Errorf("sigma must be positive, got %f", c.Sigma)
	}

	switch c.Method {
	case "subtract": c.CorrMethod = MethodSubtract
	case "divide":   c.CorrMethod = MethodDivide
	default:
		return fmt.Errorf("unsupported correction method '%s'", c.Method)
	}

	mode, err := igrid.ParseBoundaryMode(c.Boundary)
	if err != nil {
		return err
	}
	c.BoundaryMode = mode

	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}

	return nil
}
