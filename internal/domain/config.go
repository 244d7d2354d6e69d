package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Extractor    ExtractorConfig    `mapstructure:"extractor"`
	Stream       StreamConfig       `mapstructure:"stream"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Client       ClientConfig       `mapstructure:"client"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// ServerConfig contains gateway server configuration
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	BasePath          string        `mapstructure:"base_path"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
}

// CORSConfig contains the cross-origin headers set on every response
type CORSConfig struct {
	AllowOrigin  string `mapstructure:"allow_origin"`
	AllowHeaders string `mapstructure:"allow_headers"`
	AllowMethods string `mapstructure:"allow_methods"`
}

// ExtractorConfig contains extraction library configuration
type ExtractorConfig struct {
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ProxyURL       string        `mapstructure:"proxy_url"`
}

// StreamConfig contains streaming proxy configuration
type StreamConfig struct {
	WindowSize int `mapstructure:"window_size"` // bytes held in memory per relay
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`    // categorized log files; empty disables them
}

// ClientConfig contains client controller configuration
type ClientConfig struct {
	ServerURL       string        `mapstructure:"server_url"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	StatusInterval  time.Duration `mapstructure:"status_interval"`
	PreviewDebounce time.Duration `mapstructure:"preview_debounce"`
	SearchDebounce  time.Duration `mapstructure:"search_debounce"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
	SettingsDB      string        `mapstructure:"settings_db"`
}

// NotificationConfig controls desktop notifications sent by the CLI when a
// download finishes
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send; empty picks one for the OS
}

// DefaultBrowserUserAgent is sent on the first metadata attempt
const DefaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "localhost",
			Port:              3000,
			BasePath:          "/api",
			ShutdownTimeout:   30 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowHeaders: "Content-Type",
			AllowMethods: "GET, POST, OPTIONS",
		},
		Extractor: ExtractorConfig{
			UserAgent:      DefaultBrowserUserAgent,
			RequestTimeout: 30 * time.Second,
		},
		Stream: StreamConfig{
			WindowSize: 32 * 1024,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
		Client: ClientConfig{
			ServerURL:       "http://localhost:3000/api",
			PollInterval:    2 * time.Second,
			StatusInterval:  5 * time.Second,
			PreviewDebounce: time.Second,
			SearchDebounce:  500 * time.Millisecond,
			NotificationTTL: 3 * time.Second,
			SettingsDB:      "$HOME/.ytdl-gateway/settings.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
		},
	}
}
