package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/luthersystems/minischeme/lisp"
	"github.com/luthersystems/minischeme/parser"
	"github.com/spf13/cobra"
)

var (
	rootConfigFile     string
	rootDebug          bool
	rootMaxStackHeight int

	config = DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minischeme",
	Short: "A minimal scheme interpreter",
	Long: `A minimal scheme interpreter.

Without a subcommand an interactive repl is started.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootConfigFile != "" {
			cfg, err := LoadConfig(rootConfigFile)
			if err != nil {
				return err
			}
			config = cfg
		}
		config.applyFlags(cmd)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return replCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigFile, "config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false,
		"Write debug logs, including garbage collections, to stderr")
	rootCmd.PersistentFlags().IntVar(&rootMaxStackHeight, "max-stack-height", lisp.DefaultMaxStackHeight,
		"Maximum call stack height (0 means unlimited)")
}

// newInterpreter returns a session configured by cfg with every preload file
// already evaluated.
func newInterpreter(cfg *Config) (*lisp.Interpreter, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	s, err := lisp.NewInterpreter(
		lisp.WithReader(parser.NewReader()),
		lisp.WithLogger(logger),
		lisp.WithMaximumStackHeight(cfg.MaxStackHeight),
	)
	if err != nil {
		return nil, err
	}
	for _, path := range cfg.Preload {
		err := loadFile(s, path, false)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("preload: %w", err)
		}
	}
	return s, nil
}

func loadFile(s *lisp.Interpreter, path string, print bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return load(s, path, b, print)
}

func load(s *lisp.Interpreter, name string, text []byte, print bool) error {
	results, err := s.Load(name, string(text))
	if print {
		for _, out := range results {
			fmt.Println(out)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
