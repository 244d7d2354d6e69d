package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// SettingsService loads and stores the client's Settings object under the
// fixed key, as JSON merged over the defaults
type SettingsService struct {
	repo   domain.SettingsRepository
	logger *zap.Logger
}

// NewSettingsService creates a settings service backed by repo
func NewSettingsService(repo domain.SettingsRepository, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, logger: logger}
}

// Load returns the saved settings merged over the defaults. A corrupt saved
// value is logged and ignored.
func (s *SettingsService) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	raw, ok, err := s.repo.Get(domain.SettingsKey)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return settings, nil
	}

	// Unmarshal only overwrites keys present in raw
	merged := settings
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		s.logger.Warn("Ignoring unreadable saved settings", zap.Error(err))
		return settings, nil
	}
	return merged, nil
}

// Save stores settings
func (s *SettingsService) Save(settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.repo.Put(domain.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Reset removes the stored settings and returns the defaults
func (s *SettingsService) Reset() (domain.Settings, error) {
	if err := s.repo.Delete(domain.SettingsKey); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("failed to reset settings: %w", err)
	}
	return domain.DefaultSettings(), nil
}

// SettingKeys returns the JSON keys of the settings object, sorted
func SettingKeys() []string {
	fields, _ := settingsFields(domain.DefaultSettings())
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplySetting returns settings with the JSON key set to value. The value is
// parsed according to the key's type; numbers must be positive and the theme
// must be light or dark.
func ApplySetting(settings domain.Settings, key, value string) (domain.Settings, error) {
	fields, err := settingsFields(settings)
	if err != nil {
		return settings, err
	}

	current, ok := fields[key]
	if !ok {
		return settings, fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(SettingKeys(), ", "))
	}

	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return settings, fmt.Errorf("%s must be true or false", key)
		}
		fields[key] = b
	case float64:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return settings, fmt.Errorf("%s must be a positive integer", key)
		}
		fields[key] = n
	default:
		value = strings.TrimSpace(value)
		if value == "" {
			return settings, fmt.Errorf("%s cannot be empty", key)
		}
		if key == "themeMode" && value != domain.ThemeLight && value != domain.ThemeDark {
			return settings, fmt.Errorf("themeMode must be %s or %s", domain.ThemeLight, domain.ThemeDark)
		}
		fields[key] = value
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return settings, err
	}
	var out domain.Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return settings, err
	}
	return out, nil
}

func settingsFields(settings domain.Settings) (map[string]interface{}, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
