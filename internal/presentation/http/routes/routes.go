package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/presentation/http/handler"
	"github.com/ardentsoft/stroypos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Receipt   *handler.ReceiptHandler
	Printer   *handler.PrinterHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.RegisterMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-register rate limiter
		rateLimiter := middleware.NewRegisterRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          30 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		v1.GET("/products", h.Product.List)

		cart := v1.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.DELETE("", h.Cart.Clear)
			cart.POST("/items", h.Cart.AddItem)
			cart.PUT("/items/:product_id", h.Cart.SetQuantity)
			cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
			cart.POST("/discount", h.Cart.SetDiscount)
			cart.POST("/payment-method", h.Cart.SetPaymentMethod)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", h.Order.Checkout)
			orders.GET("/pending", h.Order.Pending)

			// Settlement endpoints carry a single-flight guard: a double
			// click must not hit the backend twice.
			guarded := orders.Group("")
			guarded.Use(middleware.NewInflightGuard().Middleware())
			{
				guarded.POST("/:id/confirm", h.Order.Confirm)
				guarded.POST("/:id/cancel", h.Order.Cancel)
				guarded.POST("/:id/print", h.Order.Print)
			}
		}

		v1.GET("/receipt/last", h.Receipt.Last)

		printer := v1.Group("/printer")
		{
			printer.GET("/status", h.Printer.Status)
			printer.POST("/test", h.Printer.Test)
		}

		v1.GET("/dashboard/stats", h.Dashboard.Stats)
	}

	return router
}
