package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"craftmon/cmd/craftmon/ui"
	"craftmon/internal/config"
	"craftmon/internal/logging"
	"craftmon/internal/manager"
	"craftmon/internal/peripheral/sim"
	"craftmon/internal/view"
	"craftmon/internal/view/builtin"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dashboard on the simulated peripheral bus",
	Long: `Starts the render loop against the simulated bus described by the
config's sim section. Each simulated monitor shows up as a panel in the
interactive console; key presses inject touch events.

The config file is watched: edits to assignments, options or refresh rates
apply without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

func runDashboard(parent context.Context) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", cfgPath, err)
	}

	if err := logging.Initialize(cfg.StateDir, cfg.Logging.Options()); err != nil {
		return err
	}
	defer logging.CloseAll()

	runID := uuid.NewString()
	logging.Boot("craftmon %s starting, run %s", cfg.Version, runID)
	logger.Info("starting", zap.String("run_id", runID), zap.String("config", cfgPath))

	bus, monitors := buildSimBus(cfg)

	reg := view.NewRegistry()
	if err := builtin.Register(reg); err != nil {
		return err
	}

	m := manager.New(reg, bus)
	if err := m.Reconfigure(cfg); err != nil {
		return err
	}

	loop := manager.NewLoop(m, cfg.Loop.TickDuration(), cfg.Loop.ViewTimeoutDuration())

	watcher, err := manager.NewConfigWatcher(cfgPath, loop, m)
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		logger.Warn("config watching disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(ctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	if headless {
		logger.Info("running headless; send SIGINT to stop")
	} else {
		logsDir := ""
		if cfg.Logging.Enabled {
			logsDir = filepath.Join(cfg.StateDir, "logs")
		}
		console := ui.NewConsole(bus, monitors, m.MountedViews, logsDir)
		prog := tea.NewProgram(console, tea.WithAltScreen())
		g.Go(func() error {
			_, err := prog.Run()
			stop() // console quit ends the loop too
			return err
		})
		g.Go(func() error {
			<-ctx.Done()
			prog.Quit()
			return nil
		})
	}

	err = g.Wait()
	logging.Boot("craftmon stopped, run %s", runID)
	return err
}

// buildSimBus attaches the peripherals the config's sim section asks for.
func buildSimBus(cfg *config.Config) (*sim.Bus, []*sim.Monitor) {
	bus := sim.NewBus()

	monitors := make([]*sim.Monitor, 0, len(cfg.Sim.Monitors))
	for _, mc := range cfg.Sim.Monitors {
		mon := sim.NewMonitor(mc.Name, mc.Width, mc.Height)
		bus.Attach(mon)
		monitors = append(monitors, mon)
	}

	for _, dev := range cfg.Sim.Devices {
		switch dev {
		case "me_bridge":
			bus.Attach(sim.NewMEBridge("me_bridge_0", cfg.Sim.Seed))
		case "energy_store":
			bus.Attach(sim.NewEnergyStore("energy_store_0", 16_000_000))
		case "fluid_store":
			bus.Attach(sim.NewFluidStore("fluid_store_0", cfg.Sim.Seed))
		default:
			logger.Warn("unknown sim device", zap.String("device", dev))
		}
	}
	return bus, monitors
}
