package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
	"github.com/yourusername/ytdl-gateway/internal/infrastructure"
	"github.com/yourusername/ytdl-gateway/pkg/logger"
)

const requestTimeout = 30 * time.Second

var (
	configPath  string
	serverURL   string
	noAutoStart bool
	verbose     bool
	jsonOutput  bool
	notify      bool

	cfg      *domain.Config
	log      *zap.Logger
	api      *client.APIClient
	notifier *infrastructure.NotificationService

	rootCmd = &cobra.Command{
		Use:   "ytdl",
		Short: "ytdl - YouTube download client",
		Long: `A command-line client for the ytdl gateway: inspect videos, resolve direct
links, stream downloads to disk and manage the download backend's queue and history.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Gateway base URL (default from config, http://localhost:3000/api)")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start a local gateway if it is not running")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output JSON")
	rootCmd.PersistentFlags().BoolVar(&notify, "notify", false, "Send a desktop notification when a download finishes")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(fetchFileCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(uiCmd)
}

// setup loads configuration and builds the API client shared by all commands
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = app.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serverURL != "" {
		cfg.Client.ServerURL = serverURL
	}

	if notify {
		cfg.Notification.Enabled = true
	}

	log = logger.NewCLI(verbose)
	api = client.NewAPIClient(cfg.Client.ServerURL, requestTimeout)
	notifier = infrastructure.NewNotificationService(&cfg.Notification, log)
	log.Debug("Using gateway", zap.String("url", api.BaseURL()))
	return nil
}

// ensureServer starts a local gateway when none answers (unless --no-auto-start)
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := ensureServerRunning(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// openSettings opens the local settings store; the caller closes it
func openSettings() (*client.SettingsService, func(), error) {
	repo, err := infrastructure.NewSQLiteSettingsRepository(cfg.Client.SettingsDB)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := repo.Close(); err != nil {
			log.Warn("Failed to close settings store", zap.Error(err))
		}
	}
	return client.NewSettingsService(repo, log), closeFn, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
