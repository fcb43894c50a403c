package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsamod-cli/internal/analysis"
	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

var rankAll bool

var rankCmd = &cobra.Command{
	Use:   "rank <dimension> <category> [file]",
	Short: "Find the platform with the highest proportion of a category",
	Long: `Computes per-platform proportions over one dimension and prints the platform
where category is most frequent. Ties go to the platform that sorts first.

Raw code dimensions: source_type, automated_detection, automated_decision, moderation_type.
Label dimensions: source, detection, decision, profile.`,
	Example: `  dsamod rank automated_detection Yes
  dsamod rank automated_decision AUTOMATED_DECISION_FULLY data/april.csv --all
  dsamod rank detection Auto-detect`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dim, err := analysis.DimensionByName(args[0])
		if err != nil {
			return err
		}
		category := args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		opt, err := analysisOptions(cmd, c)
		if err != nil {
			return err
		}
		ds, err := parser.Load(inputPath(c, args[2:]), parser.Options{Delimiter: opt.Delimiter})
		if err != nil {
			return err
		}
		counts, err := analysis.Count(analysis.NewFrame(ds, opt.Labeler), dim)
		if err != nil {
			return err
		}
		rates := counts.Rates()
		top, err := rates.Top(category)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s (%.2f%%)\n", top.Category, top.Platform, top.Rate*100)
		if rankAll {
			for i, p := range counts.Platforms {
				v, _ := rates.Rate(p, category)
				fmt.Fprintf(out, "- %s: %.2f%% (%d/%d)\n", p, v*100, counts.Count(p, category), counts.Total(i))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	addDatasetFlags(rankCmd)
	rankCmd.Flags().BoolVar(&rankAll, "all", false, "also list the proportion and counts of every platform")
}
