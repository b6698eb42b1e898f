package entity

import (
	"github.com/shopspring/decimal"

	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

// WalkInCustomer is printed when a sale has no attached customer. The
// fallback is a contract, not cosmetics: a receipt always carries a customer
// field.
const WalkInCustomer = "Umumiy mijoz"

// ReceiptHeader is the shop identity block at the top and bottom of every
// receipt. It comes from configuration, not from the backend.
type ReceiptHeader struct {
	StoreName    string   `json:"store_name"`
	Tagline      string   `json:"tagline,omitempty"`
	Phones       []string `json:"phones,omitempty"`
	SystemName   string   `json:"system_name,omitempty"`
	Website      string   `json:"website,omitempty"`
	SupportPhone string   `json:"support_phone,omitempty"`
}

// ReceiptItem is a single printed line item.
type ReceiptItem struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    int64           `json:"price"`
	Total    int64           `json:"total"`
}

// Receipt is a value object projected from a completed Sale at print time.
// It has no identity of its own and is never sent back to the backend; the
// thermal stream and the HTML preview are both rendered from it, so the two
// can never disagree on content.
type Receipt struct {
	Header        ReceiptHeader      `json:"header"`
	Seller        string             `json:"seller"`
	Customer      string             `json:"customer"`
	Date          string             `json:"date"`
	ReceiptNo     string             `json:"receipt_no"`
	Items         []ReceiptItem      `json:"items"`
	Discount      int64              `json:"discount"`
	PaymentMethod enum.PaymentMethod `json:"payment_method,omitempty"`
	Total         int64              `json:"total"`
	Notes         string             `json:"notes,omitempty"`
}
