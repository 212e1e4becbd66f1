package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "craftmon", cfg.Name)
	assert.Equal(t, 250*time.Millisecond, cfg.Loop.TickDuration())
	assert.Equal(t, 2*time.Second, cfg.Loop.ViewTimeoutDuration())
	assert.Len(t, cfg.Monitors, 2)
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftmon.yaml")

	cfg := DefaultConfig()
	cfg.Monitors = []MonitorAssignment{
		{
			Monitor: "monitor_3",
			View:    "fluids",
			Refresh: "750ms",
			Options: map[string]interface{}{"sort": "amount"},
		},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Monitors, 1)
	assert.Equal(t, "fluids", loaded.Monitors[0].View)
	assert.Equal(t, 750*time.Millisecond, loaded.Monitors[0].RefreshDuration(time.Second))
	assert.Equal(t, "amount", loaded.Monitors[0].Options["sort"])
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "craftmon", cfg.Name)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("duplicate monitor", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Monitors = []MonitorAssignment{
			{Monitor: "monitor_0", View: "energy"},
			{Monitor: "monitor_0", View: "fluids"},
		}
		assert.ErrorContains(t, cfg.Validate(), "assigned twice")
	})

	t.Run("missing view", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Monitors = []MonitorAssignment{{Monitor: "monitor_0"}}
		assert.ErrorContains(t, cfg.Validate(), "no view assigned")
	})

	t.Run("bad refresh", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Monitors = []MonitorAssignment{
			{Monitor: "monitor_0", View: "energy", Refresh: "soon"},
		}
		assert.ErrorContains(t, cfg.Validate(), "bad refresh")
	})

	t.Run("tiny sim monitor", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Sim.Monitors = []SimMonitorConfig{{Name: "m", Width: 3, Height: 2}}
		assert.ErrorContains(t, cfg.Validate(), "below minimum")
	})

	t.Run("auto assign without view", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AutoAssign = AutoAssignConfig{Enabled: true}
		assert.ErrorContains(t, cfg.Validate(), "auto_assign")
	})
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CRAFTMON_LOG_LEVEL", "debug")
	t.Setenv("CRAFTMON_TICK", "100ms")
	t.Setenv("CRAFTMON_STATE_DIR", "/tmp/craftmon-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 100*time.Millisecond, cfg.Loop.TickDuration())
	assert.Equal(t, "/tmp/craftmon-test", cfg.StateDir)
}

func TestConfig_BadEnvTickIgnored(t *testing.T) {
	t.Setenv("CRAFTMON_TICK", "whenever")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Loop.TickDuration())
}

func TestParseDurationFallbacks(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("", time.Second))
	assert.Equal(t, time.Second, parseDuration("garbage", time.Second))
	assert.Equal(t, time.Second, parseDuration("-5s", time.Second))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Second))
}
