package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	// Values from a local .env file become regular environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.ytdl-gateway")
		v.AddConfigPath("/etc/ytdl-gateway")
	}

	v.SetEnvPrefix("YTGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindEnvKeys registers every key so AutomaticEnv works without a config file
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"server.host", "server.port", "server.base_path", "server.shutdown_timeout",
		"server.read_header_timeout",
		"cors.allow_origin", "cors.allow_headers", "cors.allow_methods",
		"extractor.user_agent", "extractor.request_timeout", "extractor.proxy_url",
		"stream.window_size",
		"logging.level", "logging.format", "logging.output_path", "logging.logs_dir",
		"client.server_url", "client.poll_interval", "client.status_interval",
		"client.preview_debounce", "client.search_debounce", "client.notification_ttl",
		"client.settings_db",
		"notification.enabled", "notification.method",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Client.SettingsDB = ExpandPath(config.Client.SettingsDB)
	config.Logging.LogsDir = ExpandPath(config.Logging.LogsDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = ExpandPath(config.Logging.OutputPath)
	}

	return config
}

// ExpandPath expands environment variables and ~ in paths
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.Contains(path, "$HOME") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Server.BasePath == "" || !strings.HasPrefix(config.Server.BasePath, "/") {
		return fmt.Errorf("server base path must start with /: %q", config.Server.BasePath)
	}

	if config.Stream.WindowSize < 1 {
		return fmt.Errorf("stream window size must be positive")
	}

	if config.Client.PollInterval <= 0 || config.Client.StatusInterval <= 0 {
		return fmt.Errorf("client intervals must be positive")
	}

	if config.Client.PreviewDebounce < 0 || config.Client.SearchDebounce < 0 {
		return fmt.Errorf("client debounce periods cannot be negative")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("server", config.Server)
	v.Set("cors", config.CORS)
	v.Set("extractor", config.Extractor)
	v.Set("stream", config.Stream)
	v.Set("logging", config.Logging)
	v.Set("client", config.Client)
	v.Set("notification", config.Notification)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
