package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/inventory/internal/viewmodel"
)

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the inventory every time it changes",
		Long: `Print the inventory now and again after every change, including changes
made by other processes when notify.redis_addr is configured.

With --json each update is one line of JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.withApp(ctx, true, func(a *app) error {
				return c.watch(ctx, cmd, a)
			})
		},
	}
}

func (c *cli) watch(ctx context.Context, cmd *cobra.Command, a *app) error {
	vm := viewmodel.NewHomeViewModel(ctx, a.items, c.cfg.UI.StopTimeout)
	defer vm.Close()
	updates, unsubscribe := vm.UiState.Subscribe()
	defer unsubscribe()

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	first := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			// the replayed initial value is empty until the first query lands
			if first && st.ItemList == nil {
				first = false
				continue
			}
			first = false
			if c.jsonOut {
				if err := enc.Encode(st.ItemList); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(out, "%s %s\n", cyan.Sprint("──"), time.Now().Format("15:04:05"))
			if err := printItems(out, st.ItemList, c.cfg.UI.CurrencySymbol); err != nil {
				return err
			}
		}
	}
}
