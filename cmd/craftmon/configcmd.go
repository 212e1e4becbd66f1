package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"craftmon/internal/config"
	"craftmon/internal/view"
	"craftmon/internal/view/builtin"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists", cfgPath)
		}
		cfg := config.DefaultConfig()
		if err := cfg.Save(cfgPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfgPath)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file, including view options",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", cfgPath, err)
		}

		// Structural validation passed; check assignments against the
		// registry so a bad view id or option fails here, not at runtime.
		reg := view.NewRegistry()
		if err := builtin.Register(reg); err != nil {
			return err
		}
		for _, a := range cfg.Monitors {
			def, ok := reg.Get(a.View)
			if !ok {
				return fmt.Errorf("%s: monitor %q: unknown view %q", cfgPath, a.Monitor, a.View)
			}
			if _, err := view.ResolveOptions(def.Schema, a.Options); err != nil {
				return fmt.Errorf("%s: monitor %q: %w", cfgPath, a.Monitor, err)
			}
		}
		if cfg.AutoAssign.Enabled {
			if _, ok := reg.Get(cfg.AutoAssign.View); !ok {
				return fmt.Errorf("%s: auto_assign: unknown view %q", cfgPath, cfg.AutoAssign.View)
			}
		}
		fmt.Printf("%s: ok\n", cfgPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}
