package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aji-kb/pomodoro-app/internal/config"
)

// configView renders durations as strings so the output can be pasted
// back into config.yaml unchanged.
type configView struct {
	Timezone     string `yaml:"timezone"`
	DailyGoal    int    `yaml:"daily_goal"`
	TickInterval string `yaml:"tick_interval"`
	AutoLog      bool   `yaml:"auto_log"`
	Durations    struct {
		Focus      string `yaml:"focus"`
		ShortBreak string `yaml:"short_break"`
		LongBreak  string `yaml:"long_break"`
	} `yaml:"durations"`
	Alert struct {
		Enabled  bool    `yaml:"enabled"`
		Interval string  `yaml:"interval"`
		Timeout  string  `yaml:"timeout"`
		FreqHz   float64 `yaml:"freq_hz"`
		ChimeMs  int     `yaml:"chime_ms"`
	} `yaml:"alert"`
	Notifications struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"notifications"`
}

func newConfigView(cfg config.Config) configView {
	var v configView
	v.Timezone = cfg.Timezone
	v.DailyGoal = cfg.DailyGoal
	v.TickInterval = cfg.TickInterval.String()
	v.AutoLog = cfg.AutoLog
	v.Durations.Focus = cfg.Durations.Focus.String()
	v.Durations.ShortBreak = cfg.Durations.ShortBreak.String()
	v.Durations.LongBreak = cfg.Durations.LongBreak.String()
	v.Alert.Enabled = cfg.Alert.Enabled
	v.Alert.Interval = cfg.Alert.Interval.String()
	v.Alert.Timeout = cfg.Alert.Timeout.String()
	v.Alert.FreqHz = cfg.Alert.FreqHz
	v.Alert.ChimeMs = cfg.Alert.ChimeMs
	v.Notifications.Enabled = cfg.Notifications.Enabled
	return v
}

// configCmd prints the effective configuration as YAML.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if path, perr := config.Path(); perr == nil {
			fmt.Printf("# %s\n", path)
		}
		out, err := yaml.Marshal(newConfigView(cfg))
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}
