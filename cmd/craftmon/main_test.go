package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"craftmon/internal/config"
	"craftmon/internal/peripheral"
)

func TestBuildSimBus(t *testing.T) {
	logger = zap.NewNop()

	cfg := config.DefaultConfig()
	cfg.Sim.Devices = append(cfg.Sim.Devices, "flux_capacitor") // unknown: warn and skip

	bus, monitors := buildSimBus(cfg)
	require.Len(t, monitors, 2)
	assert.Len(t, bus.OfKind(peripheral.KindMonitor), 2)
	assert.Len(t, bus.OfKind(peripheral.KindMEBridge), 1)
	assert.Len(t, bus.OfKind(peripheral.KindEnergyStore), 1)
	assert.Len(t, bus.OfKind(peripheral.KindFluidStore), 1)

	w, h := monitors[0].Size()
	assert.Equal(t, 39, w)
	assert.Equal(t, 19, h)
}

func TestDefaultConfigPassesFullValidation(t *testing.T) {
	logger = zap.NewNop()

	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	// Every default assignment must reference a real builtin view.
	for _, a := range cfg.Monitors {
		assert.Contains(t, []string{"meitems", "crafting", "energy", "fluids", "status"}, a.View)
	}
}
