package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List the backend's download tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		watch, _ := cmd.Flags().GetBool("watch")

		if !watch {
			tasks, err := api.Tasks(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(tasks)
			}
			printTasks(tasks)
			return nil
		}

		ticks := make(chan struct{}, 1)
		poller := client.NewPoller(cfg.Client.PollInterval, func() {
			select {
			case ticks <- struct{}{}:
			default:
			}
		})
		poller.Start()
		defer poller.Stop()

		redraw := term.IsTerminal(int(os.Stdout.Fd()))
		for {
			tasks, err := api.Tasks(cmd.Context())
			if redraw {
				fmt.Print("\033[H\033[2J")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			} else {
				printTasks(tasks)
			}
			fmt.Printf("\nUpdated %s, refreshing every %s (Ctrl+C to stop)\n",
				time.Now().Format("15:04:05"), cfg.Client.PollInterval)

			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticks:
			}
		}
	},
}

func printTasks(tasks []domain.DownloadTask) {
	if len(tasks) == 0 {
		fmt.Println("No downloads in the queue")
		return
	}

	state := client.AppState{Tasks: tasks}
	active, pending, overall := state.QueueSummary()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tQUALITY\tSTATUS\tPROGRESS\tSPEED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%.0f%%\t%s\n",
			t.ID, truncate(t.Title, 40), t.Quality, t.Format, t.Status.DisplayName(), t.Progress, t.Speed)
	}
	w.Flush()
	fmt.Printf("\n%d downloading, %d pending, overall %.0f%%\n", active, pending, overall)
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a download task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		if err := api.CancelTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Task removed")
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List download history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		search, _ := cmd.Flags().GetString("search")
		filter, _ := cmd.Flags().GetString("filter")

		if !validFilter(filter) {
			return fmt.Errorf("invalid filter %q (all, today, week, month)", filter)
		}

		entries, err := api.History(cmd.Context(), search)
		if err != nil {
			return err
		}

		state := client.AppState{History: entries, HistoryFilter: client.HistoryFilter(filter)}
		entries = state.VisibleHistory(time.Now())
		if jsonOutput {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No download history")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCHANNEL\tQUALITY\tSIZE\tDATE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\t%s\n",
				e.ID, truncate(e.Title, 40), truncate(e.Channel, 20), e.Quality, e.Format,
				client.FormatSize(e.FileSize), e.DownloadDate.Local().Format("2006-01-02 15:04"))
		}
		w.Flush()
		return nil
	},
}

func validFilter(filter string) bool {
	for _, f := range client.HistoryFilters {
		if string(f) == filter {
			return true
		}
	}
	return false
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		if err := api.DeleteHistory(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("History entry deleted")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		stats, err := api.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(stats)
		}

		state := client.AppState{Connection: client.ConnOnline, Stats: *stats}
		fmt.Println("Download Statistics:")
		fmt.Printf("  Total:      %d\n", stats.TotalDownloads)
		fmt.Printf("  Size:       %s\n", client.FormatSize(stats.TotalSize))
		fmt.Printf("  This month: %d\n", stats.ThisMonth)
		fmt.Printf("  Active:     %d\n", stats.ActiveDownloads)
		fmt.Printf("  Status:     %s\n", state.StatusText())
		return nil
	},
}

var fetchFileCmd = &cobra.Command{
	Use:   "fetch-file [name]",
	Short: "Download a finished file from the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		output, _ := cmd.Flags().GetString("output")

		if output == "" {
			settings, closeFn, err := openSettings()
			if err != nil {
				return err
			}
			loaded, err := settings.Load()
			closeFn()
			if err != nil {
				return err
			}
			output = loaded.DownloadPath
		}

		var onProgress func(int64)
		if term.IsTerminal(int(os.Stderr.Fd())) {
			onProgress = func(written int64) {
				fmt.Fprintf(os.Stderr, "\r%s  ", client.FormatSize(written))
			}
		}

		path, err := client.FetchFile(cmd.Context(), api, args[0], output, onProgress)
		if onProgress != nil {
			fmt.Fprintln(os.Stderr)
		}
		if err != nil {
			notifier.NotifyDownloadFailed(args[0], err)
			return err
		}
		notifier.NotifyDownloadCompleted(path)
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

func init() {
	queueCmd.Flags().BoolP("watch", "w", false, "Keep refreshing the list")
	historyCmd.Flags().StringP("search", "s", "", "Search text")
	historyCmd.Flags().StringP("filter", "F", "all", "Date filter: all | today | week | month")
	historyCmd.AddCommand(historyDeleteCmd)
	fetchFileCmd.Flags().StringP("output", "o", "", "Output directory (default: the saved download path)")
}
