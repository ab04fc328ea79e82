// Package app implements the trackctl command line client for a trackhub
// server.
package app

import (
	"github.com/spf13/cobra"
)

var serverAddr string

// NewTrackctlCommand builds the root command with every subcommand attached.
func NewTrackctlCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "trackctl",
		Short:         "Inspect and control a trackhub server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&serverAddr, "server", "s",
		"http://localhost:8000", "Base URL of the trackhub server.")

	root.AddCommand(
		newVehiclesCommand(),
		newHistoryCommand(),
		newSendCommand(),
		newWatchCommand(),
		newFeedCommand(),
	)

	return root
}
