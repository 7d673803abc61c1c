package main

import (
	"github.com/aretw0/enfa/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion service",
	Long: `Exposes POST /convert, POST /accepts, GET /healthz, GET /info and GET /metrics.
Results are cached in memory, or in Redis when --redis-addr is set.
Set ENFA_CACHE_KEY (base64, 32 bytes) to encrypt cached results.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.LoadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Serve(ctx, s, streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the result cache")
	serveCmd.Flags().String("cache-ttl", "", "Expiry of cached results, e.g. 10m")
}
