package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the client settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings()
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the client settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set [key] [value]",
	Short:     "Change one setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: client.SettingKeys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, closeFn, err := openSettings()
		if err != nil {
			return err
		}
		defer closeFn()

		current, err := settings.Load()
		if err != nil {
			return err
		}
		updated, err := client.ApplySetting(current, args[0], args[1])
		if err != nil {
			return err
		}
		if err := settings.Save(updated); err != nil {
			return err
		}
		fmt.Println("Settings saved")
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, closeFn, err := openSettings()
		if err != nil {
			return err
		}
		defer closeFn()

		if _, err := settings.Reset(); err != nil {
			return err
		}
		fmt.Println("Settings reset to defaults")
		return nil
	},
}

func showSettings() error {
	settings, closeFn, err := openSettings()
	if err != nil {
		return err
	}
	defer closeFn()

	current, err := settings.Load()
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(current)
	}
	printSettings(current)
	return nil
}

func printSettings(s domain.Settings) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "downloadPath\t%s\n", s.DownloadPath)
	fmt.Fprintf(w, "defaultQuality\t%s\n", s.DefaultQuality)
	fmt.Fprintf(w, "concurrentDownloads\t%d\n", s.ConcurrentDownloads)
	fmt.Fprintf(w, "themeMode\t%s\n", s.ThemeMode)
	fmt.Fprintf(w, "enableAnimations\t%t\n", s.EnableAnimations)
	fmt.Fprintf(w, "retryCount\t%d\n", s.RetryCount)
	fmt.Fprintf(w, "historyRetention\t%d\n", s.HistoryRetention)
	w.Flush()
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
