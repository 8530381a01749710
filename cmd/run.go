package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run scheme code",
	Long:  `Run scheme code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exprs, err := runReadExpressions(args)
		if err != nil {
			return err
		}

		s, err := newInterpreter(config)
		if err != nil {
			return err
		}
		defer s.Close()
		for i := range exprs {
			name := args[i]
			if runExpression {
				name = "expression"
			}
			err := load(s, name, exprs[i], runPrint)
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func runReadExpressions(args []string) ([][]byte, error) {
	exprs := make([][]byte, len(args))
	if runExpression {
		for i := range args {
			exprs[i] = []byte(args[i])
		}
		return exprs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		exprs[i] = b
	}
	return exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as scheme expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
