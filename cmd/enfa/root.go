package main

import (
	"os"

	"github.com/aretw0/enfa/internal/cli"
	"github.com/aretw0/enfa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "enfa <file>",
	Short: "enfa removes epsilon transitions from finite automata",
	Long: `enfa reads a nondeterministic finite automaton with epsilon transitions and
prints an equivalent automaton without them.

The input is a grid file, a YAML or JSON document, or "-" for stdin.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.LoadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Convert(ctx, s, args[0], streams(cmd))
	},
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func streams(cmd *cobra.Command) cli.Streams {
	return cli.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

func init() {
	rootCmd.SetIn(os.Stdin)
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("from", "", "Input format: auto, grid, yaml or json")
	rootCmd.PersistentFlags().String("to", "", "Output format: grid, yaml, json or table")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("config", "", "Config file (default .enfa.yaml when present)")
}
