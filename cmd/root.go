package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aji-kb/pomodoro-app/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro timer for the terminal",
	// main prints the error; keep cobra from printing it a second time
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run()
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	// Add commands; other files define these vars
	rootCmd.AddCommand(statsCmd, configCmd, versionCmd)
}
