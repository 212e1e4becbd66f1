package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"craftmon/internal/config"
	"craftmon/internal/peripheral"
	"craftmon/internal/view"
	"craftmon/internal/view/builtin"
)

// viewsCmd lists the registered views, their options and whether each could
// mount against the configured sim bus.
var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List registered views and the options they accept",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := view.NewRegistry()
		if err := builtin.Register(reg); err != nil {
			return err
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		bus, _ := buildSimBus(cfg)
		p := peripheral.NewPeripherals(bus)

		for _, def := range reg.All() {
			mountable := "mountable"
			if err := def.CheckMount(p); err != nil {
				mountable = fmt.Sprintf("not mountable (%v)", err)
			}
			fmt.Printf("%-12s %-17s %-24s %s\n", def.ID, def.Strategy, def.Title, mountable)
			if len(def.Requires) > 0 {
				kinds := make([]string, len(def.Requires))
				for i, k := range def.Requires {
					kinds[i] = string(k)
				}
				fmt.Printf("  requires: %s\n", strings.Join(kinds, ", "))
			}
			for _, spec := range def.Schema {
				fmt.Printf("  option %-18s %-9s default=%-8v %s\n",
					spec.Key, spec.Type, spec.Default, spec.Description)
			}
		}
		return nil
	},
}

// monitorsCmd shows how the current config maps monitors to views.
var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Show the monitor assignments from the config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		explicit := make(map[string]bool)
		for _, a := range cfg.Monitors {
			explicit[a.Monitor] = true
			line := fmt.Sprintf("%-12s -> %s", a.Monitor, a.View)
			if a.Refresh != "" {
				line += fmt.Sprintf(" (refresh %s)", a.Refresh)
			}
			fmt.Println(line)
		}
		for _, sm := range cfg.Sim.Monitors {
			if explicit[sm.Name] {
				continue
			}
			if cfg.AutoAssign.Enabled {
				fmt.Printf("%-12s -> %s (auto)\n", sm.Name, cfg.AutoAssign.View)
			} else {
				fmt.Printf("%-12s -> (unassigned)\n", sm.Name)
			}
		}
		return nil
	},
}
