package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()

		settings, closeFn, err := openSettings()
		if err != nil {
			return err
		}
		defer closeFn()

		// stderr belongs to the UI; keep library logging quiet
		controller := client.NewController(api, settings, cfg.Client, nil)
		return tui.Run(cmd.Context(), controller)
	},
}
