package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product mirrors a catalog entry served by the sales backend. The terminal
// never mutates products; stock and prices are authoritative on the backend
// and refreshed with every catalog fetch.
//
// Prices are whole so'm. Stock is decimal because fractional units (2.5 kg,
// 1.2 metr) are sold as-is.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"` // dona, kg, metr
	BuyPrice     int64           `json:"buyPrice"`
	SellPrice    int64           `json:"sellPrice"`
	MinStock     decimal.Decimal `json:"minStock"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// LowStock reports whether current stock has fallen to or below the reorder
// threshold.
func (p *Product) LowStock() bool {
	return p.CurrentStock.Cmp(p.MinStock) <= 0
}

// ProductIndex builds an ID lookup over a catalog slice.
func ProductIndex(products []Product) map[uuid.UUID]*Product {
	idx := make(map[uuid.UUID]*Product, len(products))
	for i := range products {
		idx[products[i].ID] = &products[i]
	}
	return idx
}
