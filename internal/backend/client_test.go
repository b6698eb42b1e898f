package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/pkg/apperror"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.BackendConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		Timeout: 5 * time.Second,
	}, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestListProductsBareArray(t *testing.T) {
	id := uuid.New()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"` + id.String() + `","name":"Sement M400","sellPrice":45000,"currentStock":"12.5"}]`))
	}))

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, id, products[0].ID)
	assert.Equal(t, int64(45000), products[0].SellPrice)
	assert.True(t, products[0].CurrentStock.Equal(decimal.RequireFromString("12.5")))
}

func TestListProductsEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":2,"next":null,"previous":null,"results":[{"name":"A"},{"name":"B"}]}`))
	}))

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Name)
}

func TestPendingSalesQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	sales, err := client.PendingSales(context.Background(), 100)

	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCreateSalePostsDraft(t *testing.T) {
	saleID := uuid.New()
	productID := uuid.New()

	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"` + saleID.String() + `","status":"pending","total_amount":90000}`))
	}))

	draft := &gateway.SaleDraft{
		TotalAmount:    90000,
		DiscountAmount: 0,
		PaymentMethod:  enum.PaymentCash,
		Items: []gateway.SaleDraftLine{
			{Product: productID, Quantity: decimal.NewFromInt(2), Price: 45000, Total: 90000},
		},
	}

	sale, err := client.CreateSale(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, saleID, sale.ID)
	assert.Equal(t, enum.SaleStatusPending, sale.Status)
	assert.EqualValues(t, 90000, body["total_amount"])
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
}

func TestConfirmPaymentPath(t *testing.T) {
	saleID := uuid.New()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/"+saleID.String()+"/confirm-payment/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "card", body["payment_method"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"` + saleID.String() + `","status":"completed","payment_method":"card"}`))
	}))

	sale, err := client.ConfirmPayment(context.Background(), saleID, enum.PaymentCard)

	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
}

func TestCancelSalePath(t *testing.T) {
	saleID := uuid.New()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/"+saleID.String()+"/cancel-order/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"` + saleID.String() + `","status":"cancelled"}`))
	}))

	sale, err := client.CancelSale(context.Background(), saleID)

	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, sale.Status)
}

func TestUpstreamErrorSurfacesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Omborda mahsulot yetarli emas"}`))
	}))

	_, err := client.CreateSale(context.Background(), &gateway.SaleDraft{})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Omborda mahsulot yetarli emas", appErr.Message)
	assert.True(t, appErr.Upstream)
}

func TestUpstreamErrorDetailField(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	}))

	_, err := client.CancelSale(context.Background(), uuid.New())

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Not found.", appErr.Message)
}

func TestUnreachableBackend(t *testing.T) {
	client := NewClient(&config.BackendConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	}, zaptest.NewLogger(t))
	defer client.Close()

	_, err := client.ListProducts(context.Background())

	assert.ErrorIs(t, err, apperror.ErrBackendDown)
}

func TestDispatchPrint(t *testing.T) {
	saleID := uuid.New()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/print/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, saleID.String(), body["sale_id"])

		w.WriteHeader(http.StatusAccepted)
	}))

	assert.NoError(t, client.DispatchPrint(context.Background(), saleID))
}

func TestStats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/stats/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"today_sales":1250000,"total_sales":98000000,"pending_count":3}`))
	}))

	stats, err := client.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1250000), stats.TodaySales)
	assert.Equal(t, 3, stats.PendingCount)
}
