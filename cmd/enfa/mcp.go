package main

import (
	"github.com/aretw0/enfa/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts enfa as an MCP server on standard input and output, exposing the
convert_enfa, accepts_word and describe_automaton tools. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.LoadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		return cli.MCP(s, streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
