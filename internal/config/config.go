package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/christopherklint97/planr/internal/allocator"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	User          UserConfig     `toml:"user"`
	Window        WindowConfig   `toml:"window"`
	Storage       StorageConfig  `toml:"storage"`
	Notifications NotifyConfig   `toml:"notifications"`
	Calendar      CalendarConfig `toml:"calendar"`
	Log           LogConfig      `toml:"log"`
}

type UserConfig struct {
	Owner string `toml:"owner"`
}

type WindowConfig struct {
	DayStart       string `toml:"day_start"`
	DayEnd         string `toml:"day_end"`
	AfternoonStart string `toml:"afternoon_start"`
	StrictEmptyDay bool   `toml:"strict_empty_day"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // "sqlite" | "postgres" | "file" | "memory"
	DSN    string `toml:"dsn"`
}

type NotifyConfig struct {
	Enabled              bool   `toml:"enabled"`
	LeadDays             int    `toml:"lead_days"`
	CheckIntervalMinutes int    `toml:"check_interval_minutes"`
	WorkStart            string `toml:"work_start"`
	WorkEnd              string `toml:"work_end"`
	WorkDays             []int  `toml:"work_days"`
}

type CalendarConfig struct {
	Source string `toml:"source"` // ICS URL or file path
}

type LogConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			DayStart:       "09:00 AM",
			DayEnd:         "06:00 PM",
			AfternoonStart: "12:00 PM",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		Notifications: NotifyConfig{
			Enabled:              true,
			LeadDays:             1,
			CheckIntervalMinutes: 60,
			WorkStart:            "09:00 AM",
			WorkEnd:              "06:00 PM",
			WorkDays:             []int{1, 2, 3, 4, 5, 6, 7},
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "planr"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the
// defaults with environment overrides applied.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if _, err := cfg.WorkingWindow(); err != nil {
		return nil, fmt.Errorf("checking [window]: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANR_OWNER"); v != "" {
		cfg.User.Owner = v
	}
	if v := os.Getenv("PLANR_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("PLANR_STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("PLANR_CALENDAR_SOURCE"); v != "" {
		cfg.Calendar.Source = v
	}
}

// WorkingWindow parses the [window] section.
func (c *Config) WorkingWindow() (allocator.WorkingWindow, error) {
	var w allocator.WorkingWindow
	var err error
	if w.DayStart, err = schedule.ParseClock(c.Window.DayStart); err != nil {
		return w, fmt.Errorf("day_start: %w", err)
	}
	if w.DayEnd, err = schedule.ParseClock(c.Window.DayEnd); err != nil {
		return w, fmt.Errorf("day_end: %w", err)
	}
	if w.AfternoonStart, err = schedule.ParseClock(c.Window.AfternoonStart); err != nil {
		return w, fmt.Errorf("afternoon_start: %w", err)
	}
	return w, w.Validate()
}

func (c *Config) AllocatorOptions() allocator.Options {
	return allocator.Options{StrictEmptyDay: c.Window.StrictEmptyDay}
}

// LogLevel maps [log] level to slog; unknown values fall back to warn.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// WriteDefault writes the default config to path if no file exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	out, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}

// SaveOwner persists the owner identifier using a read-modify-write so
// other settings and unknown keys survive.
func SaveOwner(path, owner string) error {
	cfg := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	user, ok := cfg["user"].(map[string]any)
	if !ok {
		user = make(map[string]any)
	}
	user["owner"] = owner
	cfg["user"] = user

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
