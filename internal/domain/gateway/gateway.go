// Package gateway declares the terminal's view of the remote sales backend.
// The backend owns all durable data; these interfaces are the only way the
// application layer reaches it, which keeps services testable against fakes.
package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

// SaleDraftLine is one line of an order submission. Price is resolved from
// the live catalog at creation time and frozen into the sale by the backend.
type SaleDraftLine struct {
	Product  uuid.UUID       `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    int64           `json:"price"`
	Total    int64           `json:"total"`
}

// SaleDraft is the POST /sales/ payload: a cart snapshot priced and totalled
// by the terminal, created in pending state on the backend.
type SaleDraft struct {
	Customer       *uuid.UUID         `json:"customer"`
	TotalAmount    int64              `json:"total_amount"`
	DiscountAmount int64              `json:"discount_amount"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	Items          []SaleDraftLine    `json:"items"`
}

// CatalogGateway serves the read-only product catalog.
type CatalogGateway interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

// SalesGateway drives the sale lifecycle on the backend.
type SalesGateway interface {
	PendingSales(ctx context.Context, limit int) ([]entity.Sale, error)
	CreateSale(ctx context.Context, draft *SaleDraft) (*entity.Sale, error)
	ConfirmPayment(ctx context.Context, saleID uuid.UUID, method enum.PaymentMethod) (*entity.Sale, error)
	CancelSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error)
}

// PrintGateway relays a print job to the backend's thermal printer queue.
// Fire-and-forget from the terminal's perspective.
type PrintGateway interface {
	DispatchPrint(ctx context.Context, saleID uuid.UUID) error
}

// StatsGateway serves display-only aggregate figures.
type StatsGateway interface {
	Stats(ctx context.Context) (*entity.DashboardStats, error)
}
