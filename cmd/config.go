package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/minischeme/lisp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config is the contents of a configuration file.  Command line flags
// override the values it contains.
type Config struct {
	Prompt         string   `yaml:"prompt"`
	HistoryFile    string   `yaml:"history_file"`
	MaxStackHeight int      `yaml:"max_stack_height"`
	Debug          bool     `yaml:"debug"`
	Preload        []string `yaml:"preload"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         "> ",
		MaxStackHeight: lisp.DefaultMaxStackHeight,
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig.  Relative
// preload paths are resolved against the directory containing path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, p := range cfg.Preload {
		if !filepath.IsAbs(p) {
			cfg.Preload[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

func parseConfig(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	err := yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MaxStackHeight < 0 {
		return nil, fmt.Errorf("max_stack_height is negative: %d", cfg.MaxStackHeight)
	}
	cfg.HistoryFile, err = expandHome(cfg.HistoryFile)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides values in cfg with the persistent flags that were set
// on the command line.
func (cfg *Config) applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = rootDebug
	}
	if flags.Changed("max-stack-height") {
		cfg.MaxStackHeight = rootMaxStackHeight
	}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
