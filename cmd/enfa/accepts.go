package main

import (
	"github.com/aretw0/enfa/internal/cli"
	"github.com/spf13/cobra"
)

var acceptsCmd = &cobra.Command{
	Use:   "accepts <file> <word>...",
	Short: "Report whether the automaton accepts each word",
	Long: `Simulates the automaton, epsilon transitions included, on each word.
Words are written with the letters a, b, c, ...; pass "" for the empty word.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.LoadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		return cli.Accepts(s, args[0], args[1:], streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(acceptsCmd)
}
