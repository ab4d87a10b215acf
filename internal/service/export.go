package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jask/inventory/internal/database/repository"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportService writes the whole inventory in one of the supported formats.
type ExportService struct {
	Items Catalog
}

// Export writes every item to w. The CSV form has a header row and is
// accepted back by ImportCSV.
func (s *ExportService) Export(ctx context.Context, w io.Writer, format string) (int, error) {
	items, err := s.Items.ListItems(ctx)
	if err != nil {
		return 0, err
	}
	switch strings.ToLower(format) {
	case FormatCSV, "":
		err = WriteCSV(w, items)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(items)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(items); err == nil {
			err = enc.Close()
		}
	default:
		return 0, fmt.Errorf("unknown export format %q (want csv, json or yaml)", format)
	}
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", format, err)
	}
	return len(items), nil
}

func WriteCSV(w io.Writer, items []repository.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "price", "quantity"}); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write([]string{it.Name, it.Price.String(), strconv.Itoa(it.Quantity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
