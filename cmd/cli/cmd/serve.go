package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lcalmvr/sub-assistant-sub001/api"
	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "bind address (overrides config)")
}

// serveCmd runs the tower compute API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tower compute API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		addr := cfg.Server.Listen
		if serveAddr != "" {
			addr = serveAddr
		}
		server := api.NewServer("0.1.0", cfg)
		return server.ListenAndServe(addr)
	},
}
