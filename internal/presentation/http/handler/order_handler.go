package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ardentsoft/stroypos/internal/application/service"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/request"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/response"
	"github.com/ardentsoft/stroypos/internal/presentation/http/middleware"
)

// OrderHandler handles the order lifecycle: checkout, the kassa pending
// list, settlement, cancellation and receipt printing.
type OrderHandler struct {
	orders   *service.OrderService
	printers *service.PrinterService
	poller   *service.PendingPoller
	catalog  gateway.CatalogGateway
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, printers *service.PrinterService, poller *service.PendingPoller, catalog gateway.CatalogGateway) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		printers: printers,
		poller:   poller,
		catalog:  catalog,
	}
}

// Checkout handles submitting the register's cart as a pending sale.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	registerID := middleware.GetRegisterID(c)
	sale, err := h.orders.CreateOrder(c.Request.Context(), registerID, entity.ProductIndex(products), req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sale == nil {
		response.BadRequest(c, "Savat bo'sh")
		return
	}

	// The new sale shows up on the kassa screen without waiting a poll tick
	_ = h.poller.Refresh(c.Request.Context())

	response.Created(c, "Order created successfully", sale)
}

// Pending handles the kassa pending-order list, served from the poller
// snapshot. ?refresh=true forces a backend round-trip first.
func (h *OrderHandler) Pending(c *gin.Context) {
	if c.Query("refresh") == "true" {
		if err := h.poller.Refresh(c.Request.Context()); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.OK(c, "Pending orders retrieved successfully", h.poller.Snapshot())
}

// findPending locates a sale in the snapshot, refreshing once when it is
// missing (the sale may be newer than the last poll tick).
func (h *OrderHandler) findPending(c *gin.Context, saleID uuid.UUID) *entity.Sale {
	snap := h.poller.Snapshot()
	if sale := snap.Find(saleID); sale != nil {
		return sale
	}
	_ = h.poller.Refresh(c.Request.Context())
	snap = h.poller.Snapshot()
	return snap.Find(saleID)
}

// Confirm handles settling a pending sale.
func (h *OrderHandler) Confirm(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale := h.findPending(c, saleID)
	if sale == nil {
		response.NotFound(c, "Order not found")
		return
	}

	updated, err := h.orders.ConfirmPayment(c.Request.Context(), sale, enum.PaymentMethod(req.PaymentMethod))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Cache the receipt so the print view can show it immediately
	receipt := h.printers.CacheReceipt(updated)
	_ = h.poller.Refresh(c.Request.Context())

	response.OK(c, "Payment confirmed successfully", gin.H{
		"sale":    updated,
		"receipt": receipt,
	})
}

// Cancel handles voiding a pending sale.
func (h *OrderHandler) Cancel(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	updated, err := h.orders.CancelOrder(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.poller.Refresh(c.Request.Context())

	response.OK(c, "Order cancelled successfully", updated)
}

// Print handles printing a pending sale's receipt on the register's printer,
// or relaying the job to the backend when no local hardware is configured.
func (h *OrderHandler) Print(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	sale := h.findPending(c, saleID)
	if sale == nil {
		response.NotFound(c, "Order not found")
		return
	}

	receipt, err := h.printers.PrintSale(c.Request.Context(), sale)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}
