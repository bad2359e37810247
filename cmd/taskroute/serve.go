package main

import (
	"github.com/aretw0/taskroute/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves POST /run, the graph endpoints, /healthz and /metrics.
Stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(app)

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			app.Config.Server.Addr = addr
		}
		if cmd.Flags().Changed("watch") {
			app.Config.Prompts.Watch, _ = cmd.Flags().GetBool("watch")
		}

		return cli.Serve(cmd.Context(), app)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the prompts file when it changes")
}
