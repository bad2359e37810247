package main

import (
	"github.com/aretw0/taskroute/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Exposes the route tool, the get_graph tool and the graph resources over the
Model Context Protocol, on stdio (default) or SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(app)

		if cmd.Flags().Changed("transport") {
			app.Config.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			app.Config.MCP.Port, _ = cmd.Flags().GetInt("port")
		}
		if err := app.Config.Validate(); err != nil {
			return err
		}

		return cli.ServeMCP(cmd.Context(), app)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "", "Transport: stdio or sse (overrides mcp.transport)")
	mcpCmd.Flags().Int("port", 0, "Port for SSE transport (overrides mcp.port)")
}
