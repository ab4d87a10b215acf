package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/service"
	"github.com/jask/inventory/internal/viewmodel"
)

const invalidItemHint = "name, price and quantity are required; price and quantity must be non-negative numbers"

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

// mustGet returns the item or a not-found error.
func mustGet(ctx context.Context, a *app, id int64) (*repository.Item, error) {
	it, err := a.items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %d not found", id)
	}
	return it, nil
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PRICE QUANTITY",
		Short: "Add an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				vm := viewmodel.NewItemEntryViewModel(a.items)
				defer vm.Close()
				vm.UpdateUiState(viewmodel.ItemDetails{Name: args[0], Price: args[1], Quantity: args[2]})
				saved, err := vm.SaveItem(ctx)
				if err != nil {
					return err
				}
				if !saved {
					return fmt.Errorf("item not saved: %s", invalidItemHint)
				}
				success(cmd.OutOrStdout(), "Added %s", vm.UiState().ItemDetails.ToItem().Name)
				return nil
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally filtered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				items, err := a.items.ListItems(ctx)
				if err != nil {
					return err
				}
				items = service.Search(items, search)
				if c.jsonOut {
					return printJSON(cmd.OutOrStdout(), items)
				}
				return printItems(cmd.OutOrStdout(), items, c.cfg.UI.CurrencySymbol)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "fuzzy filter by name")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				it, err := mustGet(ctx, a, id)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return printJSON(cmd.OutOrStdout(), it)
				}
				printItem(cmd.OutOrStdout(), *it, c.cfg.UI.CurrencySymbol)
				return nil
			})
		},
	}
}

func (c *cli) editCmd() *cobra.Command {
	var name, price, quantity string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item's name, price or quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("price") && !flags.Changed("quantity") {
				return fmt.Errorf("nothing to change: pass --name, --price or --quantity")
			}
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				if _, err := mustGet(ctx, a, id); err != nil {
					return err
				}
				vm := viewmodel.NewItemEditViewModel(ctx, a.items, id)
				defer vm.Close()
				select {
				case <-vm.Loaded():
				case <-time.After(5 * time.Second):
					return fmt.Errorf("item %d did not load", id)
				}
				d := vm.UiState().ItemDetails
				if flags.Changed("name") {
					d.Name = name
				}
				if flags.Changed("price") {
					d.Price = price
				}
				if flags.Changed("quantity") {
					d.Quantity = quantity
				}
				vm.UpdateUiState(d)
				saved, err := vm.SaveItem(ctx)
				if err != nil {
					return err
				}
				if !saved {
					return fmt.Errorf("item not saved: %s", invalidItemHint)
				}
				success(cmd.OutOrStdout(), "Updated item %d", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&price, "price", "", "new price")
	cmd.Flags().StringVar(&quantity, "quantity", "", "new quantity in stock")
	return cmd
}

func (c *cli) sellCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "sell ID",
		Short: "Sell units of an item, reducing its stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				it, err := mustGet(ctx, a, id)
				if err != nil {
					return err
				}
				if it.Quantity < count {
					return fmt.Errorf("only %d of %s in stock", it.Quantity, it.Name)
				}
				vm := viewmodel.NewItemDetailsViewModel(ctx, a.items, id, 0)
				defer vm.Close()
				for i := 0; i < count; i++ {
					if err := vm.ReduceQuantityByOne(ctx); err != nil {
						return err
					}
				}
				left := it.Quantity - count
				success(cmd.OutOrStdout(), "Sold %d %s, %d left", count, it.Name, left)
				if left == 0 {
					warning(cmd.OutOrStdout(), "%s is now out of stock", it.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "units to sell")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				it, err := mustGet(ctx, a, id)
				if err != nil {
					return err
				}
				vm := viewmodel.NewItemDetailsViewModel(ctx, a.items, id, 0)
				defer vm.Close()
				if err := vm.DeleteItem(ctx); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Deleted %s", it.Name)
				return nil
			})
		},
	}
}
