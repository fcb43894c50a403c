package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dsamod-cli/internal/config"
	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dsamod configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_path: %s\n", c.InputPath)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(out, "charts_dir: %s\n", c.ChartsDir)
		fmt.Fprintf(out, "chart_width: %d\n", c.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", c.ChartHeight)
		fmt.Fprintf(out, "top_profiles: %d\n", c.TopProfiles)
		fmt.Fprintf(out, "top_platform_profiles: %d\n", c.TopPlatformProfiles)
		fmt.Fprintf(out, "expected_per_platform: %d\n", c.ExpectedPerPlatform)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := setKey(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	positive := func(dst *int) error {
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		*dst = i
		return nil
	}
	switch key {
	case "input_path":
		c.InputPath = val
	case "delimiter":
		if _, err := parser.ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "charts_dir":
		c.ChartsDir = val
	case "chart_width":
		return positive(&c.ChartWidth)
	case "chart_height":
		return positive(&c.ChartHeight)
	case "top_profiles":
		return positive(&c.TopProfiles)
	case "top_platform_profiles":
		return positive(&c.TopPlatformProfiles)
	case "expected_per_platform":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for expected_per_platform: %v (0 disables the check)", val)
		}
		c.ExpectedPerPlatform = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
