package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/inventory/internal/config"
)

// cli carries global flag values and the loaded config for one invocation.
type cli struct {
	configPath string
	dbPath     string
	jsonOut    bool
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory keeps track of items, prices and stock",
		Long: `Inventory keeps a small catalogue of items with a price and a quantity
in stock. Run it without a subcommand to open the terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $INVENTORY_CONFIG or ~/.config/inventory/config.toml)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "database file (overrides database.path)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "output as JSON")

	root.AddCommand(
		c.tuiCmd(),
		c.addCmd(),
		c.listCmd(),
		c.showCmd(),
		c.editCmd(),
		c.sellCmd(),
		c.deleteCmd(),
		c.watchCmd(),
		c.importCmd(),
		c.exportCmd(),
		c.seedCmd(),
		c.resetCmd(),
		c.configCmd(),
	)
	return root
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	var (
		cfg config.Config
		err error
	)
	path := c.configPath
	if path != "" && cmd.Name() == "init" {
		// config init may be creating the file
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			path = ""
		}
	}
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	c.cfg = cfg
	return nil
}
