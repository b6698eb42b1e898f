package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

// CartItem is one working line of an unsubmitted sale. LineDiscount is
// reserved for per-line discounts; the current flow only applies cart-wide
// discounts, so it stays zero.
type CartItem struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	LineDiscount int64           `json:"discount"`
}

// Cart is the register-local working set of selected products. It lives only
// in memory: the backend owns every durable record, and an unsubmitted cart
// is intentionally lost on restart.
//
// DiscountPercent and DiscountAmount are mutually exclusive in effect;
// percent wins when both are set.
type Cart struct {
	Items           map[uuid.UUID]*CartItem `json:"items"`
	DiscountAmount  int64                   `json:"discount_amount"`
	DiscountPercent int64                   `json:"discount_percent"`
	PaymentMethod   enum.PaymentMethod      `json:"payment_method"`
}

// NewCart returns an empty cart defaulting to cash settlement.
func NewCart() *Cart {
	return &Cart{
		Items:         make(map[uuid.UUID]*CartItem),
		PaymentMethod: enum.PaymentCash,
	}
}

// CartTotals is the derived money view of a cart.
type CartTotals struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discount_amount"`
	Total          int64 `json:"total"`
}

// LineTotal prices a quantity at a unit price, rounded to whole so'm.
func LineTotal(unitPrice int64, qty decimal.Decimal) int64 {
	return qty.Mul(decimal.NewFromInt(unitPrice)).Round(0).IntPart()
}

// Totals computes subtotal, effective discount and payable total against the
// given catalog. Pure: same cart and catalog always yield the same result.
//
// A line whose product is missing from the catalog contributes zero. That is
// deliberate: a cart can outlive a product deletion on the backend, and a
// stale line must not wedge the register.
func (c *Cart) Totals(catalog map[uuid.UUID]*Product) CartTotals {
	var subtotal int64
	for _, item := range c.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			continue
		}
		subtotal += LineTotal(product.SellPrice, item.Quantity)
	}

	var discount int64
	if c.DiscountPercent > 0 {
		discount = subtotal * c.DiscountPercent / 100
	} else if c.DiscountAmount > 0 {
		discount = c.DiscountAmount
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	return CartTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          total,
	}
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Lines returns the cart items as a slice for serialization.
func (c *Cart) Lines() []CartItem {
	lines := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, *item)
	}
	return lines
}
