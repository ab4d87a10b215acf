// Package viewmodel holds per-screen state: each holder turns repository
// streams into the value its screen renders and carries out the screen's
// actions. Holders are bound to a scope; Close ends every subscription.
package viewmodel

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/inventory/internal/database/repository"
)

// ItemDetails is the editable, string-shaped form of an item.
type ItemDetails struct {
	ID       int64
	Name     string
	Price    string
	Quantity string
}

// ItemUiState is the state of the entry and edit screens.
type ItemUiState struct {
	ItemDetails  ItemDetails
	IsEntryValid bool
}

// ToItem converts the form into an item. Unparseable numbers become zero.
func (d ItemDetails) ToItem() repository.Item {
	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil {
		price = decimal.Zero
	}
	qty, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil {
		qty = 0
	}
	return repository.Item{
		ID:       d.ID,
		Name:     strings.TrimSpace(d.Name),
		Price:    price,
		Quantity: qty,
	}
}

// DetailsFromItem is the inverse of ToItem.
func DetailsFromItem(it repository.Item) ItemDetails {
	return ItemDetails{
		ID:       it.ID,
		Name:     it.Name,
		Price:    it.Price.String(),
		Quantity: strconv.Itoa(it.Quantity),
	}
}

// UiStateFromItem builds the form state for an existing, valid item.
func UiStateFromItem(it repository.Item) ItemUiState {
	d := DetailsFromItem(it)
	return ItemUiState{ItemDetails: d, IsEntryValid: ValidateInput(d)}
}

// ValidateInput reports whether d may be saved: every field is filled in,
// the price is a non-negative decimal and the quantity a non-negative integer.
func ValidateInput(d ItemDetails) bool {
	name, price, qty := strings.TrimSpace(d.Name), strings.TrimSpace(d.Price), strings.TrimSpace(d.Quantity)
	if name == "" || price == "" || qty == "" {
		return false
	}
	p, err := decimal.NewFromString(price)
	if err != nil || p.IsNegative() {
		return false
	}
	q, err := strconv.Atoi(qty)
	return err == nil && q >= 0
}

// FormatPrice renders price as currency with two decimals.
func FormatPrice(price decimal.Decimal, symbol string) string {
	if price.IsNegative() {
		return "-" + symbol + price.Neg().StringFixed(2)
	}
	return symbol + price.StringFixed(2)
}
