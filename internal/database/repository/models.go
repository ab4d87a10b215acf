package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents an items row.
type Item struct {
	ID        int64           `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Price     decimal.Decimal `json:"price" yaml:"price"`
	Quantity  int             `json:"quantity" yaml:"quantity"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"updated_at"`
}
