package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/dsamod-cli/internal/analysis"
)

var cliRows = []string{
	"platform_name,source_type,automated_detection,automated_decision,moderation_type",
	"A,SOURCE_VOLUNTARY,Yes,AUTOMATED_DECISION_FULLY,VISIBILITY",
	"A,SOURCE_VOLUNTARY,Yes,AUTOMATED_DECISION_FULLY,VISIBILITY",
	"A,SOURCE_VOLUNTARY,Yes,AUTOMATED_DECISION_FULLY,ACCOUNT",
	"A,SOURCE_ARTICLE_16,No,AUTOMATED_DECISION_PARTIALLY,VISIBILITY",
	"B,SOURCE_TYPE_OTHER_NOTIFICATION,No,AUTOMATED_DECISION_NOT_AUTOMATED,VISIBILITY",
	"B,SOURCE_TYPE_OTHER_NOTIFICATION,No,AUTOMATED_DECISION_NOT_AUTOMATED,VISIBILITY",
	"B,SOURCE_VOLUNTARY,Yes,AUTOMATED_DECISION_FULLY,ACCOUNT",
	"B,SOURCE_VOLUNTARY,Yes,AUTOMATED_DECISION_FULLY,VISIBILITY",
}

// resetFlags restores flag values and Changed state between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(home, "sample-strat.csv")
	if err := os.WriteFile(p, []byte(strings.Join(cliRows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return home
}

func TestCLI_AnalyzeWritesReportAndCharts(t *testing.T) {
	home := setupHome(t)
	report := filepath.Join(home, "out", "report.md")
	chartsDir := filepath.Join(home, "charts")

	if _, err := runCmd(t, "analyze", filepath.Join(home, "sample-strat.csv"),
		"--output", report, "--charts-dir", chartsDir, "--expected-per-platform", "4"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, s := range []string{
		"[CONCLUSIONS]",
		"- Platform with greater automatic detection: A (75.00%).",
		"- Platform with the highest proportion of fully manual decisions: B (50.00%).",
	} {
		if !strings.Contains(md, s) {
			t.Fatalf("report missing %q:\n%s", s, md)
		}
	}
	if strings.Contains(md, "expected 4") {
		t.Fatalf("stratified sample should not warn:\n%s", md)
	}
	for _, name := range []string{"platforms.png", "decision_rate.png", "source_heatmap.png"} {
		if _, err := os.Stat(filepath.Join(chartsDir, name)); err != nil {
			t.Fatalf("chart %s not written: %v", name, err)
		}
	}
}

func TestCLI_AnalyzeStdoutFromConfig(t *testing.T) {
	home := setupHome(t)
	cfgPath := filepath.Join(home, "cfg.yaml")
	body := "input_path: " + filepath.Join(home, "sample-strat.csv") +
		"\ncharts_dir: " + filepath.Join(home, "charts") + "\ntop_profiles: 1\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := runCmd(t, "analyze", "--config", cfgPath, "--no-charts")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "[TOP MODERATOR PROFILES]") || !strings.Contains(out, "File: sample-strat.csv") {
		t.Fatalf("unexpected stdout:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, "charts")); !os.IsNotExist(err) {
		t.Fatalf("charts should not be rendered with --no-charts")
	}
}

func TestCLI_Rank(t *testing.T) {
	home := setupHome(t)
	csv := filepath.Join(home, "sample-strat.csv")

	out, err := runCmd(t, "rank", "automated_detection", "Yes", csv, "--all")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	want := "Yes: A (75.00%)\n- A: 75.00% (3/4)\n- B: 50.00% (2/4)\n"
	if out != want {
		t.Fatalf("rank output = %q, want %q", out, want)
	}

	out, err = runCmd(t, "rank", "decision", "Automated decision", csv)
	if err != nil {
		t.Fatalf("rank label: %v", err)
	}
	if out != "Automated decision: A (75.00%)\n" {
		t.Fatalf("rank label output = %q", out)
	}

	_, err = runCmd(t, "rank", "automated_decision", "AUTOMATED_DECISION_UNKNOWN", csv)
	var empty *analysis.EmptyTableError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyTableError, got %v", err)
	}

	if _, err := runCmd(t, "rank", "nope", "x", csv); err == nil {
		t.Fatalf("expected unknown dimension error")
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := setupHome(t)
	cfgPath := filepath.Join(home, "cfg.yaml")
	if _, err := runCmd(t, "config", "set", "top_profiles", "3", "--config", cfgPath); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := runCmd(t, "config", "set", "top_profiles", "0", "--config", cfgPath); err == nil {
		t.Fatalf("expected invalid value error")
	}
	if _, err := runCmd(t, "config", "set", "bogus", "1", "--config", cfgPath); err == nil {
		t.Fatalf("expected unknown key error")
	}
	out, err := runCmd(t, "config", "show", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "top_profiles: 3\n") || !strings.Contains(out, "charts_dir: charts\n") {
		t.Fatalf("config show output:\n%s", out)
	}
}
