package main

import (
	"github.com/aretw0/enfa/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an automaton without converting it",
	Long:  `Parses the automaton, checks that every state and symbol is in range and prints a summary.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.LoadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		return cli.Validate(s, args[0], streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
