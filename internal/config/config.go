// Package config holds the craftmon YAML configuration: monitor-to-view
// assignments, loop timing, the simulated bus layout and logging switches.
// Durations are stored as strings ("250ms", "2s") and parsed on access with
// a default fallback, so a bad value degrades instead of failing the load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"craftmon/internal/logging"
)

// Config is the root configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// StateDir holds logs and other runtime state.
	StateDir string `yaml:"state_dir"`

	Loop       LoopConfig          `yaml:"loop"`
	Monitors   []MonitorAssignment `yaml:"monitors"`
	AutoAssign AutoAssignConfig    `yaml:"auto_assign"`
	Sim        SimConfig           `yaml:"sim"`
	Logging    LoggingConfig       `yaml:"logging"`
}

// LoopConfig times the event loop.
type LoopConfig struct {
	// Tick is the loop heartbeat; at most one view renders per tick.
	Tick string `yaml:"tick"`
	// ViewTimeout bounds a single view's data fetch.
	ViewTimeout string `yaml:"view_timeout"`
	// ErrorBackoff is how long a failing view sits out before retrying.
	ErrorBackoff string `yaml:"error_backoff"`
}

// TickDuration returns the parsed tick, defaulting to 250ms.
func (l LoopConfig) TickDuration() time.Duration {
	return parseDuration(l.Tick, 250*time.Millisecond)
}

// ViewTimeoutDuration returns the parsed view timeout, defaulting to 2s.
func (l LoopConfig) ViewTimeoutDuration() time.Duration {
	return parseDuration(l.ViewTimeout, 2*time.Second)
}

// ErrorBackoffDuration returns the parsed backoff, defaulting to 5s.
func (l LoopConfig) ErrorBackoffDuration() time.Duration {
	return parseDuration(l.ErrorBackoff, 5*time.Second)
}

// MonitorAssignment binds one monitor to one view.
type MonitorAssignment struct {
	Monitor string `yaml:"monitor"`
	View    string `yaml:"view"`
	// Refresh overrides the view's default data refresh interval.
	Refresh string `yaml:"refresh,omitempty"`
	// TextScale is forwarded to the monitor; 0 leaves it alone.
	TextScale float64 `yaml:"text_scale,omitempty"`
	// Options are view-specific and validated against the view's schema.
	Options map[string]interface{} `yaml:"options,omitempty"`
}

// RefreshDuration returns the parsed refresh override, or def when unset.
func (m MonitorAssignment) RefreshDuration(def time.Duration) time.Duration {
	return parseDuration(m.Refresh, def)
}

// AutoAssignConfig controls what happens to monitors with no explicit
// assignment.
type AutoAssignConfig struct {
	Enabled bool   `yaml:"enabled"`
	View    string `yaml:"view"`
}

// SimConfig lays out the simulated peripheral bus used by `craftmon run`.
type SimConfig struct {
	Seed     int64              `yaml:"seed"`
	Monitors []SimMonitorConfig `yaml:"monitors"`
	// Devices lists the non-monitor peripherals to attach:
	// me_bridge, energy_store, fluid_store.
	Devices []string `yaml:"devices"`
}

// SimMonitorConfig sizes one simulated monitor.
type SimMonitorConfig struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Enabled    bool            `yaml:"enabled"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// Options maps to the logging package's options.
func (l LoggingConfig) Options() logging.Options {
	return logging.Options{Enabled: l.Enabled, Level: l.Level, Categories: l.Categories}
}

// DefaultConfig returns the default configuration: two monitors on the sim
// bus, the status view auto-assigned to anything unclaimed.
func DefaultConfig() *Config {
	return &Config{
		Name:     "craftmon",
		Version:  "1.2.0",
		StateDir: ".craftmon",
		Loop: LoopConfig{
			Tick:         "250ms",
			ViewTimeout:  "2s",
			ErrorBackoff: "5s",
		},
		Monitors: []MonitorAssignment{
			{Monitor: "monitor_0", View: "meitems", Refresh: "1s"},
			{Monitor: "monitor_1", View: "energy", Refresh: "500ms"},
		},
		AutoAssign: AutoAssignConfig{Enabled: true, View: "status"},
		Sim: SimConfig{
			Seed: 1,
			Monitors: []SimMonitorConfig{
				{Name: "monitor_0", Width: 39, Height: 19},
				{Name: "monitor_1", Width: 29, Height: 12},
			},
			Devices: []string{"me_bridge", "energy_store", "fluid_store"},
		},
		Logging: LoggingConfig{Enabled: false, Level: "info"},
	}
}

// Load reads a config file and applies environment overrides. A missing
// file returns the defaults rather than an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the parts that would otherwise fail deep inside the loop.
func (c *Config) Validate() error {
	seen := make(map[string]string)
	for _, m := range c.Monitors {
		if m.Monitor == "" {
			return fmt.Errorf("assignment with empty monitor name")
		}
		if m.View == "" {
			return fmt.Errorf("monitor %q: no view assigned", m.Monitor)
		}
		if prev, dup := seen[m.Monitor]; dup {
			return fmt.Errorf("monitor %q assigned twice (%s and %s)", m.Monitor, prev, m.View)
		}
		seen[m.Monitor] = m.View
		if m.Refresh != "" {
			if _, err := time.ParseDuration(m.Refresh); err != nil {
				return fmt.Errorf("monitor %q: bad refresh %q: %w", m.Monitor, m.Refresh, err)
			}
		}
	}
	if c.AutoAssign.Enabled && c.AutoAssign.View == "" {
		return fmt.Errorf("auto_assign enabled with no view")
	}
	for _, sm := range c.Sim.Monitors {
		if sm.Width < 7 || sm.Height < 4 {
			return fmt.Errorf("sim monitor %q: %dx%d below minimum 7x4", sm.Name, sm.Width, sm.Height)
		}
	}
	return nil
}

// applyEnvOverrides lets a few knobs be set without editing the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CRAFTMON_STATE_DIR"); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv("CRAFTMON_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
		c.Logging.Enabled = true
	}
	if v := os.Getenv("CRAFTMON_TICK"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.Loop.Tick = v
		}
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
