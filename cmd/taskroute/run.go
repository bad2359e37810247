package main

import (
	"os"

	"github.com/aretw0/taskroute/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Route a task, or start an interactive session",
	Long: `With --task or --input, routes a single request and prints the result.
Without them, reads a task and an input per round from stdin until 'exit'.`,
	Example: `  taskroute run --task "What is 12 * 8 - 6?" --input "12 * 8 - 6"
  taskroute run --task "Can you translate this?" --input "Bonjour le monde" --json
  taskroute run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{}
		opts.Task, _ = cmd.Flags().GetString("task")
		opts.Input, _ = cmd.Flags().GetString("input")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Headless, _ = cmd.Flags().GetBool("headless")

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(app)

		return cli.Run(cmd.Context(), app.Router, opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("task", "t", "", "What you want done")
	runCmd.Flags().StringP("input", "i", "", "The text or expression to work on")
	runCmd.Flags().Bool("json", false, "Print the response as JSON")
	runCmd.Flags().Bool("headless", false, "Plain output without prompts or markdown rendering")
}
