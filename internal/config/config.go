package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DurationsConfig struct {
	Focus      time.Duration `mapstructure:"focus"`       // "25m"
	ShortBreak time.Duration `mapstructure:"short_break"` // "5m"
	LongBreak  time.Duration `mapstructure:"long_break"`  // "15m"
}

type AlertConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"` // gap between chimes
	Timeout  time.Duration `mapstructure:"timeout"`  // alert auto-stop
	FreqHz   float64       `mapstructure:"freq_hz"`
	ChimeMs  int           `mapstructure:"chime_ms"`
}

type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Timezone      string              `mapstructure:"timezone"` // e.g. "Asia/Kolkata" (optional)
	DailyGoal     int                 `mapstructure:"daily_goal"`
	TickInterval  time.Duration       `mapstructure:"tick_interval"`
	AutoLog       bool                `mapstructure:"auto_log"`
	Durations     DurationsConfig     `mapstructure:"durations"`
	Alert         AlertConfig         `mapstructure:"alert"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

func Default() Config {
	return Config{
		Timezone:     "",
		DailyGoal:    8,
		TickInterval: 500 * time.Millisecond,
		AutoLog:      true,
		Durations: DurationsConfig{
			Focus:      25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
		Alert: AlertConfig{
			Enabled:  true,
			Interval: 4 * time.Second,
			Timeout:  60 * time.Second,
			FreqHz:   880,
			ChimeMs:  180,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "pomodoro")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Path returns the location of the config file, creating its directory
// when absent.
func Path() (string, error) {
	return xdgConfigPath()
}

// Load reads ~/.config/pomodoro/config.yaml, falling back to defaults
// when the file is missing.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("daily_goal", cfg.DailyGoal)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("auto_log", cfg.AutoLog)
	v.SetDefault("durations.focus", cfg.Durations.Focus)
	v.SetDefault("durations.short_break", cfg.Durations.ShortBreak)
	v.SetDefault("durations.long_break", cfg.Durations.LongBreak)
	v.SetDefault("alert.enabled", cfg.Alert.Enabled)
	v.SetDefault("alert.interval", cfg.Alert.Interval)
	v.SetDefault("alert.timeout", cfg.Alert.Timeout)
	v.SetDefault("alert.freq_hz", cfg.Alert.FreqHz)
	v.SetDefault("alert.chime_ms", cfg.Alert.ChimeMs)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize snaps unusable values back to their defaults.
func (c *Config) normalize() {
	def := Default()
	if c.DailyGoal < 1 {
		c.DailyGoal = def.DailyGoal
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.Durations.Focus <= 0 {
		c.Durations.Focus = def.Durations.Focus
	}
	if c.Durations.ShortBreak <= 0 {
		c.Durations.ShortBreak = def.Durations.ShortBreak
	}
	if c.Durations.LongBreak <= 0 {
		c.Durations.LongBreak = def.Durations.LongBreak
	}
	if c.Alert.Interval <= 0 {
		c.Alert.Interval = def.Alert.Interval
	}
	if c.Alert.Timeout <= 0 {
		c.Alert.Timeout = def.Alert.Timeout
	}
	if c.Alert.FreqHz <= 0 {
		c.Alert.FreqHz = def.Alert.FreqHz
	}
	if c.Alert.ChimeMs <= 0 {
		c.Alert.ChimeMs = def.Alert.ChimeMs
	}
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
