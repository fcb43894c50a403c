package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputPath           string `mapstructure:"input_path" yaml:"input_path"`
	Delimiter           string `mapstructure:"delimiter" yaml:"delimiter"`
	ChartsDir           string `mapstructure:"charts_dir" yaml:"charts_dir"`
	ChartWidth          int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight         int    `mapstructure:"chart_height" yaml:"chart_height"`
	TopProfiles         int    `mapstructure:"top_profiles" yaml:"top_profiles"`
	TopPlatformProfiles int    `mapstructure:"top_platform_profiles" yaml:"top_platform_profiles"`
	// ExpectedPerPlatform is the stratified sample size; 0 disables the check.
	ExpectedPerPlatform int `mapstructure:"expected_per_platform" yaml:"expected_per_platform"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dsamod", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dsamod/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. CLI flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DSAMOD")
	v.AutomaticEnv()

	v.SetDefault("input_path", "sample-strat-april-10k.csv")
	v.SetDefault("delimiter", "")
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("chart_width", 1024)
	v.SetDefault("chart_height", 576)
	v.SetDefault("top_profiles", 10)
	v.SetDefault("top_platform_profiles", 6)
	v.SetDefault("expected_per_platform", 10000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".dsamod"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// a missing file is fine, a malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
