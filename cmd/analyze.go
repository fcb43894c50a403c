package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/dsamod-cli/internal/analysis"
	"github.com/KaramelBytes/dsamod-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/dsamod-cli/internal/config"
	"github.com/KaramelBytes/dsamod-cli/internal/parser"
	"github.com/KaramelBytes/dsamod-cli/internal/utils"
)

var (
	anaOutputPath  string
	anaChartsDir   string
	anaNoCharts    bool
	anaDelimiter   string
	anaTopProfiles int
	anaTopPlatform int
	anaExpected    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Compare platforms by detection, decision and source type proportions",
	Long: `Loads a statements-of-reasons CSV (default: input_path from config), prints the
Markdown report or writes it with --output, and renders PNG charts into --charts-dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		path := inputPath(c, args)
		opt, err := analysisOptions(cmd, c)
		if err != nil {
			return err
		}
		rep, err := analysis.AnalyzeFile(path, opt)
		if err != nil {
			return err
		}
		md := rep.Markdown()

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote analysis to %s\n", anaOutputPath)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), md)
		}

		if anaNoCharts {
			return nil
		}
		dir := c.ChartsDir
		if cmd.Flags().Changed("charts-dir") {
			dir = anaChartsDir
		}
		written, err := charts.WriteAll(rep, dir, charts.Options{
			Width:  c.ChartWidth,
			Height: c.ChartHeight,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		logger.Info("charts written", zap.String("dir", dir), zap.Int("count", len(written)))
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d charts to %s\n", len(written), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report (Markdown)")
	analyzeCmd.Flags().StringVar(&anaChartsDir, "charts-dir", "", "directory for PNG charts (overrides config)")
	analyzeCmd.Flags().BoolVar(&anaNoCharts, "no-charts", false, "skip chart rendering")
	addDatasetFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&anaTopProfiles, "top-profiles", 0, "number of profiles in the overall ranking (overrides config)")
	analyzeCmd.Flags().IntVar(&anaTopPlatform, "top-platform-profiles", 0, "number of profiles compared per platform (overrides config)")
	analyzeCmd.Flags().IntVar(&anaExpected, "expected-per-platform", 0, "expected records per platform, 0 disables the check (overrides config)")
}

func addDatasetFlags(c *cobra.Command) {
	c.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (auto-detect if omitted)")
}

func inputPath(c *cfgpkg.Global, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.InputPath
}

// analysisOptions merges config values with flags set on cmd.
func analysisOptions(cmd *cobra.Command, c *cfgpkg.Global) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	opt.Logger = logger
	opt.TopProfiles = c.TopProfiles
	opt.TopPlatformProfiles = c.TopPlatformProfiles
	opt.ExpectedPerPlatform = c.ExpectedPerPlatform

	delim := c.Delimiter
	f := cmd.Flags()
	if f.Changed("delimiter") {
		delim = anaDelimiter
	}
	d, err := parser.ParseDelimiter(delim)
	if err != nil {
		return opt, fmt.Errorf("--delimiter: %w", err)
	}
	opt.Delimiter = d

	if f.Changed("top-profiles") {
		if anaTopProfiles <= 0 {
			return opt, fmt.Errorf("--top-profiles must be positive")
		}
		opt.TopProfiles = anaTopProfiles
	}
	if f.Changed("top-platform-profiles") {
		if anaTopPlatform <= 0 {
			return opt, fmt.Errorf("--top-platform-profiles must be positive")
		}
		opt.TopPlatformProfiles = anaTopPlatform
	}
	if f.Changed("expected-per-platform") {
		if anaExpected < 0 {
			return opt, fmt.Errorf("--expected-per-platform must not be negative")
		}
		opt.ExpectedPerPlatform = anaExpected
	}
	return opt, nil
}
