package main

import (
	"github.com/aretw0/enfa/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. Epsilon edges are dotted.
With --converted the diagram shows the automaton after epsilon elimination.
With --word the states reached after reading the word are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.LoadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		converted, _ := cmd.Flags().GetBool("converted")
		word, _ := cmd.Flags().GetString("word")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Graph(ctx, s, args[0], cli.GraphOptions{
			Converted: converted,
			Word:      word,
			Trace:     cmd.Flags().Changed("word"),
		}, streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("converted", false, "Draw the automaton after epsilon elimination")
	graphCmd.Flags().String("word", "", "Highlight the states reached after reading this word")
}
