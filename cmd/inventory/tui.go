package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/inventory/internal/prefs"
	"github.com/jask/inventory/internal/tui"
	"github.com/jask/inventory/internal/tui/screens"
)

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd)
		},
	}
}

func (c *cli) runTUI(cmd *cobra.Command) error {
	if f := c.cfg.Log.File; f != "" {
		if err := os.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			return fmt.Errorf("mkdir log dir: %w", err)
		}
		logFile, err := tea.LogToFile(f, "inventory")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
	}

	ctx := cmd.Context()
	return c.withApp(ctx, true, func(a *app) error {
		keys := tui.NewKeyRegistry(tui.DefaultKeyBindings())
		store, err := prefs.DefaultStore()
		if err != nil {
			log.Printf("warn: preferences disabled: %v", err)
		}
		p := &screens.Provider{
			Ctx:         ctx,
			Repo:        a.items,
			Keys:        keys,
			Currency:    c.cfg.UI.CurrencySymbol,
			StopTimeout: c.cfg.UI.StopTimeout,
			Prefs:       store,
		}
		prog := tea.NewProgram(tui.NewModel(p.Home(), keys), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})
}
