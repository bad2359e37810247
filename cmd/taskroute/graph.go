package main

import (
	"fmt"
	"os"

	"github.com/aretw0/taskroute/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the routing graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the Manager and its agents. No provider is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		highlight, _ := cmd.Flags().GetString("highlight")
		output, _ := cmd.Flags().GetString("output")

		mermaid := cli.Graph(cli.OfflineRouter(), highlight)
		if output == "" {
			fmt.Print(mermaid)
			return nil
		}
		if err := os.WriteFile(output, []byte(mermaid), 0o644); err != nil {
			return fmt.Errorf("writing graph: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Mermaid graph written to %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("highlight", "", "Highlight the route taken for this agent")
	graphCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
