package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ardentsoft/stroypos/internal/application/service"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/request"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/response"
	"github.com/ardentsoft/stroypos/internal/presentation/http/middleware"
)

// CartHandler handles cart-related HTTP requests. Every mutation re-fetches
// the catalog so stock clamping always works against the backend's current
// numbers, and every response returns the full cart view so the UI never has
// to reconcile partial updates.
type CartHandler struct {
	carts   *service.CartService
	catalog gateway.CatalogGateway
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *service.CartService, catalog gateway.CatalogGateway) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// cartLineView is one cart line joined with its catalog entry.
type cartLineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     int64           `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Total     int64           `json:"total"`
	Stale     bool            `json:"stale,omitempty"`
}

// cartView is the full cart state the kassa UI renders.
type cartView struct {
	Lines           []cartLineView     `json:"lines"`
	DiscountPercent int64              `json:"discount_percent"`
	DiscountAmount  int64              `json:"discount_amount"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	Totals          entity.CartTotals  `json:"totals"`
}

func buildCartView(cart *entity.Cart, catalog map[uuid.UUID]*entity.Product) cartView {
	lines := make([]cartLineView, 0, len(cart.Items))
	for _, item := range cart.Lines() {
		line := cartLineView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if product, ok := catalog[item.ProductID]; ok {
			line.Name = product.Name
			line.Unit = product.Unit
			line.Price = product.SellPrice
			line.Total = entity.LineTotal(product.SellPrice, item.Quantity)
		} else {
			line.Stale = true
		}
		lines = append(lines, line)
	}

	return cartView{
		Lines:           lines,
		DiscountPercent: cart.DiscountPercent,
		DiscountAmount:  cart.DiscountAmount,
		PaymentMethod:   cart.PaymentMethod,
		Totals:          cart.Totals(catalog),
	}
}

// fetchCatalog loads the product index for the current request.
func (h *CartHandler) fetchCatalog(c *gin.Context) (map[uuid.UUID]*entity.Product, bool) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return entity.ProductIndex(products), true
}

func (h *CartHandler) respondWithCart(c *gin.Context, registerID uuid.UUID, catalog map[uuid.UUID]*entity.Product, message string) {
	response.OK(c, message, buildCartView(h.carts.Snapshot(registerID), catalog))
}

// Get handles reading the register's cart with derived totals.
func (h *CartHandler) Get(c *gin.Context) {
	catalog, ok := h.fetchCatalog(c)
	if !ok {
		return
	}
	h.respondWithCart(c, middleware.GetRegisterID(c), catalog, "Cart retrieved successfully")
}

// AddItem handles adjusting a cart line by a quantity delta.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	catalog, ok := h.fetchCatalog(c)
	if !ok {
		return
	}

	product, found := catalog[req.ProductID]
	if !found {
		response.NotFound(c, "Product not found")
		return
	}

	registerID := middleware.GetRegisterID(c)
	h.carts.AddToCart(registerID, product, req.Quantity)

	h.respondWithCart(c, registerID, catalog, "Cart updated successfully")
}

// SetQuantity handles setting a cart line to an absolute quantity.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	catalog, ok := h.fetchCatalog(c)
	if !ok {
		return
	}

	product, found := catalog[productID]
	if !found {
		response.NotFound(c, "Product not found")
		return
	}

	registerID := middleware.GetRegisterID(c)
	h.carts.SetQuantity(registerID, product, req.Quantity)

	h.respondWithCart(c, registerID, catalog, "Cart updated successfully")
}

// RemoveItem handles dropping a cart line.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	catalog, ok := h.fetchCatalog(c)
	if !ok {
		return
	}

	registerID := middleware.GetRegisterID(c)
	h.carts.RemoveFromCart(registerID, productID)

	h.respondWithCart(c, registerID, catalog, "Item removed successfully")
}

// SetDiscount handles applying a cart-wide discount, percent or flat.
func (h *CartHandler) SetDiscount(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Percent == nil && req.Amount == nil {
		response.BadRequest(c, "Either percent or amount is required")
		return
	}

	registerID := middleware.GetRegisterID(c)
	if req.Percent != nil {
		h.carts.SetDiscountPercent(registerID, *req.Percent)
	}
	if req.Amount != nil {
		h.carts.SetDiscountAmount(registerID, *req.Amount)
	}

	catalog, ok := h.fetchCatalog(c)
	if !ok {
		return
	}
	h.respondWithCart(c, registerID, catalog, "Discount applied successfully")
}

// SetPaymentMethod handles recording the intended settlement type.
func (h *CartHandler) SetPaymentMethod(c *gin.Context) {
	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method := enum.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		response.BadRequest(c, "Noto'g'ri to'lov turi: "+req.PaymentMethod)
		return
	}

	registerID := middleware.GetRegisterID(c)
	h.carts.SetPaymentMethod(registerID, method)

	catalog, ok := h.fetchCatalog(c)
	if !ok {
		return
	}
	h.respondWithCart(c, registerID, catalog, "Payment method set successfully")
}

// Clear handles emptying the register's cart.
func (h *CartHandler) Clear(c *gin.Context) {
	registerID := middleware.GetRegisterID(c)
	h.carts.Clear(registerID)

	response.OK(c, "Cart cleared successfully", buildCartView(h.carts.Snapshot(registerID), nil))
}
