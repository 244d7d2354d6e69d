package domain

import "time"

// SettingsKey is the fixed storage key of the client settings object
const SettingsKey = "ytdownloader-settings"

// Theme values
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the client's preference object. It never leaves the client.
type Settings struct {
	DownloadPath        string `json:"downloadPath"`
	DefaultQuality      string `json:"defaultQuality"`
	ConcurrentDownloads int    `json:"concurrentDownloads"`
	ThemeMode           string `json:"themeMode"`
	EnableAnimations    bool   `json:"enableAnimations"`
	RetryCount          int    `json:"retryCount"`
	HistoryRetention    int    `json:"historyRetention"`
}

// DefaultSettings returns the settings used when nothing has been saved
func DefaultSettings() Settings {
	return Settings{
		DownloadPath:        "~/Downloads",
		DefaultQuality:      "best",
		ConcurrentDownloads: 3,
		ThemeMode:           ThemeLight,
		EnableAnimations:    true,
		RetryCount:          3,
		HistoryRetention:    90,
	}
}

// Preference is one stored key-value pair
type Preference struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name
func (Preference) TableName() string {
	return "preferences"
}

// SettingsRepository defines local key-value persistence for client settings
type SettingsRepository interface {
	// Get returns the raw value stored under key and whether it exists
	Get(key string) (string, bool, error)

	// Put stores value under key, replacing any previous value
	Put(key, value string) error

	// Delete removes key
	Delete(key string) error
}
