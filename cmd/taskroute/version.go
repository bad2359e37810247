package main

import (
	"os"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of taskroute",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(os.Stdout, taskroute.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
