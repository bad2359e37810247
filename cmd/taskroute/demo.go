package main

import (
	"os"

	"github.com/aretw0/taskroute/internal/cli"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Route the built-in sample requests",
	Long:  `Routes one translation, one summary and one calculation through the configured provider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(app)

		return cli.Demo(cmd.Context(), app.Router, os.Stdout, headless)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Bool("headless", false, "Plain output without markdown rendering")
}
