package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/viewmodel"
)

// Catalog is the part of the repository the import and export services use.
type Catalog interface {
	ListItems(ctx context.Context) ([]repository.Item, error)
	InsertItem(ctx context.Context, it repository.Item) (int64, error)
}

// IngestService handles CSV imports.
type IngestService struct {
	Items Catalog
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportCSV reads rows of name, price, quantity. A first row whose first
// column is "name" is treated as a header. Rows naming an item that already
// exists (case-insensitive) are skipped; invalid rows are reported per line
// and do not stop the import.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	existing, err := s.Items.ListItems(ctx)
	if err != nil {
		return res, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		seen[nameKey(it.Name)] = struct{}{}
	}

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	first := true
	for {
		rec, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				err = fmt.Errorf("line %d: %w", perr.StartLine, perr.Err)
			}
			res.Errors = append(res.Errors, err)
			first = false
			continue
		}
		// physical line, so quoted newlines do not shift later rows
		line, _ := csvr.FieldPos(0)
		header := first && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name")
		first = false
		if header {
			continue
		}
		if len(rec) < 3 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected 3 columns (name, price, quantity)", line))
			continue
		}
		d := viewmodel.ItemDetails{Name: rec[0], Price: rec[1], Quantity: rec[2]}
		if !viewmodel.ValidateInput(d) {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: invalid item %q", line, strings.Join(rec, ",")))
			continue
		}
		it := d.ToItem()
		key := nameKey(it.Name)
		if _, dup := seen[key]; dup {
			res.Skipped++
			continue
		}
		if _, err := s.Items.InsertItem(ctx, it); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		seen[key] = struct{}{}
		res.Imported++
	}
	return res, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
