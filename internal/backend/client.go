// Package backend is the HTTP client for the remote sales API. The backend
// owns products, sales, customers and payments; the terminal only mirrors
// them. Every call carries a request timeout so a hung backend can never
// wedge a register action indefinitely.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/pkg/apperror"
	"github.com/ardentsoft/stroypos/pkg/pagination"
)

// apiError is the error body shape the backend returns. Field names vary by
// endpoint ("error" vs "detail"), so both are tried.
type apiError struct {
	Err    string `json:"error"`
	Detail string `json:"detail"`
}

func (e *apiError) text() string {
	if e.Err != "" {
		return e.Err
	}
	return e.Detail
}

// Client talks to the sales backend. It implements every gateway interface
// in internal/domain/gateway.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a backend client from configuration. Call Close when the
// terminal shuts down.
func NewClient(cfg *config.BackendConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	res, err := c.http.R().SetContext(ctx).Get("/products/")
	if err != nil {
		return nil, c.unreachable("list products", err)
	}
	if res.IsError() {
		return nil, c.upstream(res, "list products")
	}

	products, err := pagination.UnwrapList[entity.Product](res.Bytes())
	if err != nil {
		return nil, fmt.Errorf("backend: decode products: %w", err)
	}
	return products, nil
}

// PendingSales fetches sales awaiting settlement, newest first.
func (c *Client) PendingSales(ctx context.Context, limit int) ([]entity.Sale, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"status": string(enum.SaleStatusPending),
			"limit":  strconv.Itoa(limit),
		}).
		Get("/sales/")
	if err != nil {
		return nil, c.unreachable("pending sales", err)
	}
	if res.IsError() {
		return nil, c.upstream(res, "pending sales")
	}

	sales, err := pagination.UnwrapList[entity.Sale](res.Bytes())
	if err != nil {
		return nil, fmt.Errorf("backend: decode sales: %w", err)
	}
	return sales, nil
}

// CreateSale submits a cart snapshot; the backend creates the sale in
// pending state and returns it.
func (c *Client) CreateSale(ctx context.Context, draft *gateway.SaleDraft) (*entity.Sale, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetContentType("application/json").
		SetBody(draft).
		Post("/sales/")
	if err != nil {
		return nil, c.unreachable("create sale", err)
	}
	if res.IsError() {
		return nil, c.upstream(res, "create sale")
	}

	return decodeSale(res.Bytes())
}

// ConfirmPayment settles a pending sale with the chosen method and returns
// the completed record.
func (c *Client) ConfirmPayment(ctx context.Context, saleID uuid.UUID, method enum.PaymentMethod) (*entity.Sale, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetContentType("application/json").
		SetBody(map[string]string{"payment_method": string(method)}).
		Post(fmt.Sprintf("/sales/%s/confirm-payment/", saleID))
	if err != nil {
		return nil, c.unreachable("confirm payment", err)
	}
	if res.IsError() {
		return nil, c.upstream(res, "confirm payment")
	}

	return decodeSale(res.Bytes())
}

// CancelSale voids a pending sale.
func (c *Client) CancelSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/sales/%s/cancel-order/", saleID))
	if err != nil {
		return nil, c.unreachable("cancel sale", err)
	}
	if res.IsError() {
		return nil, c.upstream(res, "cancel sale")
	}

	return decodeSale(res.Bytes())
}

// DispatchPrint asks the backend to print a sale's receipt on its own
// printer queue. Fire-and-forget: success or failure arrives as HTTP status
// only.
func (c *Client) DispatchPrint(ctx context.Context, saleID uuid.UUID) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetContentType("application/json").
		SetBody(map[string]string{"sale_id": saleID.String()}).
		Post("/print/")
	if err != nil {
		return c.unreachable("dispatch print", err)
	}
	if res.IsError() {
		return c.upstream(res, "dispatch print")
	}
	return nil
}

// Stats fetches the dashboard aggregate block.
func (c *Client) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	res, err := c.http.R().SetContext(ctx).Get("/dashboard/stats/")
	if err != nil {
		return nil, c.unreachable("dashboard stats", err)
	}
	if res.IsError() {
		return nil, c.upstream(res, "dashboard stats")
	}

	var stats entity.DashboardStats
	if err := json.Unmarshal(res.Bytes(), &stats); err != nil {
		return nil, fmt.Errorf("backend: decode stats: %w", err)
	}
	return &stats, nil
}

func decodeSale(data []byte) (*entity.Sale, error) {
	var sale entity.Sale
	if err := json.Unmarshal(data, &sale); err != nil {
		return nil, fmt.Errorf("backend: decode sale: %w", err)
	}
	return &sale, nil
}

// unreachable covers transport failures: timeout, refused connection, DNS.
func (c *Client) unreachable(op string, err error) error {
	c.logger.Error("backend unreachable", zap.String("op", op), zap.Error(err))
	return apperror.ErrBackendDown
}

// upstream covers HTTP-level failures, preserving the backend's own message
// so the operator sees it verbatim.
func (c *Client) upstream(res *resty.Response, op string) error {
	var body apiError
	_ = json.Unmarshal(res.Bytes(), &body)

	msg := body.text()
	if msg == "" {
		msg = res.Status()
	}

	c.logger.Warn("backend request failed",
		zap.String("op", op),
		zap.Int("status", res.StatusCode()),
		zap.String("message", msg),
	)
	return apperror.NewUpstreamError(res.StatusCode(), msg)
}
