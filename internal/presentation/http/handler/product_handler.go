package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/response"
)

// ProductHandler proxies the backend catalog for the POS product grid.
type ProductHandler struct {
	catalog gateway.CatalogGateway
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog gateway.CatalogGateway) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// productView annotates a catalog entry with the low-stock flag the grid
// renders as a warning badge.
type productView struct {
	entity.Product
	LowStock bool `json:"low_stock"`
}

// List handles listing catalog products, optionally filtered by a search
// term matched against name and barcode.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	views := make([]productView, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Barcode), search) {
			continue
		}
		views = append(views, productView{Product: p, LowStock: p.LowStock()})
	}

	response.OK(c, "Products retrieved successfully", views)
}
