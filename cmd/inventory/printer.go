package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/viewmodel"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan, color.Bold)
)

// success prints a message in green with a checkmark prefix.
func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, a...))
}

func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! %s\n", fmt.Sprintf(format, a...))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printItems writes a table of items. Out of stock rows are highlighted.
func printItems(w io.Writer, items []repository.Item, currency string) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, cyan.Sprint("ID")+"\t"+cyan.Sprint("NAME")+"\t"+cyan.Sprint("PRICE")+"\t"+cyan.Sprint("QTY"))
	for _, it := range items {
		qty := fmt.Sprint(it.Quantity)
		if it.Quantity <= 0 {
			qty = yellow.Sprint("out of stock")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Name, viewmodel.FormatPrice(it.Price, currency), qty)
	}
	return tw.Flush()
}

func printItem(w io.Writer, it repository.Item, currency string) {
	fmt.Fprintf(w, "%s %d\n", cyan.Sprint("ID:      "), it.ID)
	fmt.Fprintf(w, "%s %s\n", cyan.Sprint("Name:    "), it.Name)
	fmt.Fprintf(w, "%s %s\n", cyan.Sprint("Price:   "), viewmodel.FormatPrice(it.Price, currency))
	stock := fmt.Sprint(it.Quantity)
	if it.Quantity <= 0 {
		stock = yellow.Sprint("0 (out of stock)")
	}
	fmt.Fprintf(w, "%s %s\n", cyan.Sprint("In stock:"), stock)
}
