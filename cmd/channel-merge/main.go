package main

import(
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/junckerlab/channel-merge/pkg/merge"
	"github.com/junckerlab/channel-merge/pkg/resolve"
)

var(
	fConfigFile string
	fPath       string
	fOutDir     string
	fSigma      float64
	fBoundary   string
	fMethod     string
	fWorkers    int
	fList       bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel-merge",
		Short: "Merge single-channel r/g/b scans into illumination-corrected rgb composites",
		Long: `channel-merge resolves a folder of loosely named single-channel scan
files into grouped red/green/blue triples, corrects each channel for
uneven illumination via gaussian background estimation, and writes one
rgb composite per triple.

Input files follow <id>-<channel>[-<scan>].tif; whitespace and glued
tokens in raw names are normalized (and renamed on disk) first. Channel
color comes from the first letter of the channel token, so misspellings
like "01-reed.tif" still land in red. Names carrying "-bf" are
brightfield scans and never participate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	cmd.Flags().StringVarP(&fConfigFile, "config", "c", "", "yaml config file")
	cmd.Flags().StringVar(&fPath, "path", "", "directory containing the scans to merge")
	cmd.Flags().StringVarP(&fOutDir, "outdir", "d", "", "output directory, created if absent")
	cmd.Flags().Float64VarP(&fSigma, "sigma", "s", 0, "gaussian sigma for illumination correction (image-set dependent, experiment)")
	cmd.Flags().StringVar(&fBoundary, "boundary", "", "blur boundary mode: constant/nearest/reflect/mirror/wrap")
	cmd.Flags().StringVarP(&fMethod, "method", "m", "", "correction method: subtract or divide")
	cmd.Flags().IntVar(&fWorkers, "workers", 0, "combinations processed in parallel (0 = all cores)")
	cmd.Flags().BoolVar(&fList, "list", false, "resolve and print the combination table, touch no pixels")

	return cmd
}

func run(cmd *cobra.Command) error {
	cfg := merge.NewConfig()

	if fConfigFile != "" {
		loaded, err := merge.LoadConfig(fConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Command line args override the config file, where given
	if fPath != "" { cfg.SrcDir = fPath }
	if fOutDir != "" { cfg.OutDir = fOutDir }
	if fBoundary != "" { cfg.Boundary = fBoundary }
	if fMethod != "" { cfg.Method = fMethod }
	if fWorkers > 0 { cfg.Workers = fWorkers }
	if cmd.Flags().Changed("sigma") { cfg.Sigma = fSigma }

	if err := cfg.Finalize(); err != nil {
		return err
	}

	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime)

	if fList {
		return listCombinations(cfg, logger)
	}

	stats, err := merge.Run(cfg, logger)
	if err != nil {
		return err
	}

	logger.Printf("Done: %d composite(s) written, %d skipped, %d id(s) without a full rgb triple\n",
		stats.Written, stats.Skipped, stats.NoCombos)
	return nil
}

// listCombinations is the dry run: it still normalizes and renames,
// then prints what would be merged without reading a single pixel.
func listCombinations(cfg merge.Config, logger *log.Logger) error {
	combos, _, err := merge.ResolveDir(cfg, logger)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Key", "Red", "Green", "Blue", "Output"})
	for _, c := range combos {
		t.AppendRow(table.Row{c.Key, c.Red.Filename, c.Green.Filename, c.Blue.Filename,
			resolve.OutputName(c.Key, cfg.Ext)})
	}
	t.Render()

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "channel-merge: %v\n", err)
		os.Exit(1)
	}
}
