package cmd

import (
	"github.com/luthersystems/minischeme/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long:  `Start an interactive session that evaluates one expression at a time.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newInterpreter(config)
		if err != nil {
			return err
		}
		defer s.Close()
		return repl.RunRepl(s, config.Prompt,
			repl.WithHistoryFile(config.HistoryFile),
			repl.WithStackTraces(config.Debug))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
