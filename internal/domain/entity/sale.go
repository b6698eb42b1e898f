package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

// SaleItem is a line snapshot inside a backend sale. Name and price are
// captured at order-creation time; later catalog changes do not touch them.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	Product     uuid.UUID       `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       int64           `json:"price"`
	Total       int64           `json:"total"`
}

// Sale mirrors a backend sale record. The terminal only ever reads these;
// every transition (pending -> completed/cancelled) happens through a backend
// call that returns the updated record.
type Sale struct {
	ID             uuid.UUID          `json:"id"`
	ReceiptID      string             `json:"receipt_id"`
	Status         enum.SaleStatus    `json:"status"`
	Items          []SaleItem         `json:"items"`
	TotalAmount    int64              `json:"total_amount"`
	DiscountAmount int64              `json:"discount_amount"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	Customer       *uuid.UUID         `json:"customer,omitempty"`
	CustomerName   string             `json:"customer_name,omitempty"`
	SellerName     string             `json:"seller_name,omitempty"`
	CashierName    string             `json:"cashier_name,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// HasCustomer reports whether a named customer is attached. Debt settlement
// requires one; walk-in sales have none.
func (s *Sale) HasCustomer() bool {
	return (s.Customer != nil && *s.Customer != uuid.Nil) || s.CustomerName != ""
}
