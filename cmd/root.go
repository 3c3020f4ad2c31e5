package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/seojinpark/safemap-cli/internal/config"
	"github.com/seojinpark/safemap-cli/internal/pipeline"
	"github.com/seojinpark/safemap-cli/internal/stats"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Input overrides (take precedence over config when set)
	flagCrimeFile string
	flagGeoFile   string
	// Filter flags shared by the aggregate commands
	filterRegion string
	filterMajor  string
	filterMinor  string
	filterMin    float64
	filterMax    float64

	// Loaded configuration
	cfg *cfgpkg.Pipeline
)

var rootCmd = &cobra.Command{
	Use:   "safemap",
	Short: "safemap: regional crime aggregation over crime and coordinate tables",
	Long: `safemap joins a crime-incident table with a geographic coordinate
reference table and prints per-region aggregates: totals with share of
total, category breakdowns, and category cross-tabulations.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.safemap/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagCrimeFile, "crime-file", "", "crime table path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagGeoFile, "geo-file", "", "coordinate table path (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("crime-file") && flagCrimeFile != "" {
		cfg.CrimeFile = flagCrimeFile
	}
	if f.Changed("geo-file") && flagGeoFile != "" {
		cfg.GeoFile = flagGeoFile
	}
}

// addFilterFlags wires the shared filter flags onto an aggregate command.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterMajor, "major", "", "restrict to one major crime category")
	cmd.Flags().StringVar(&filterMinor, "minor", "", "restrict to one minor crime category")
	cmd.Flags().Float64Var(&filterMin, "min-count", 0, "lower bound on per-record count")
	cmd.Flags().Float64Var(&filterMax, "max-count", 0, "upper bound on per-record count")
}

// currentFilter builds the filter from the flag set of the invoked
// command. A --min-count equal to --max-count is a valid single-point
// range, not an error.
func currentFilter(cmd *cobra.Command) stats.Filter {
	f := stats.Filter{
		Region:        filterRegion,
		CategoryMajor: filterMajor,
		CategoryMinor: filterMinor,
	}
	if cmd.Flags().Changed("min-count") || cmd.Flags().Changed("max-count") {
		r := stats.Range{Min: filterMin, Max: filterMax}
		if !cmd.Flags().Changed("max-count") {
			r.Max = math.MaxFloat64
		}
		f.CountRange = &r
	}
	return f
}

// runPipeline validates config and executes one pipeline pass, surfacing
// run warnings on stderr so join gaps never disappear silently.
func runPipeline() (*pipeline.Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res, err := pipeline.New(cfg).Run()
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}
	if debug {
		fmt.Fprintf(os.Stderr, "run %s: %d crime rows, %d joined records, %d centroids\n",
			res.RunID, res.CrimeRows, len(res.Records), len(res.Centroids))
	}
	return res, nil
}
