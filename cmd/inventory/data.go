package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/inventory/internal/database"
	"github.com/jask/inventory/internal/service"
)

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import items from a CSV file (name,price,quantity)",
		Long: `Import items from a CSV file with the columns name, price and quantity.
A header row is optional. Items whose name already exists are skipped.
Use - to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				svc := &service.IngestService{Items: a.items}
				res, err := svc.ImportCSV(ctx, r)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if c.jsonOut {
					errs := make([]string, 0, len(res.Errors))
					for _, e := range res.Errors {
						errs = append(errs, e.Error())
					}
					return printJSON(out, map[string]any{"imported": res.Imported, "skipped": res.Skipped, "errors": errs})
				}
				success(out, "Imported %d, skipped %d", res.Imported, res.Skipped)
				for _, e := range res.Errors {
					warning(out, "%v", e)
				}
				return nil
			})
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every item as csv, json or yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				w := cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create %s: %w", output, err)
					}
					defer f.Close()
					w = f
				}
				svc := &service.ExportService{Items: a.items}
				n, err := svc.Export(ctx, w, format)
				if err != nil {
					return err
				}
				if output != "" {
					success(cmd.OutOrStdout(), "Exported %d items to %s", n, output)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", service.FormatCSV, "csv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty inventory with demo items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				n, err := database.SeedDemo(ctx, a.store, a.items)
				if err != nil {
					return err
				}
				if n == 0 {
					warning(cmd.OutOrStdout(), "Inventory is not empty, nothing seeded")
					return nil
				}
				success(cmd.OutOrStdout(), "Seeded %d demo items", n)
				return nil
			})
		},
	}
}

func (c *cli) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete every item without --yes")
			}
			ctx := cmd.Context()
			return c.withApp(ctx, false, func(a *app) error {
				svc := &service.MaintenanceService{DB: a.db, Hub: a.hub}
				if err := svc.Reset(ctx); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Inventory reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting every item")
	return cmd
}
