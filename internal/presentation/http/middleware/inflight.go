package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// InflightGuard rejects a state-changing request while an identical one is
// still running. Double-clicking "To'lovni tasdiqlash" must not confirm the
// same sale twice: the second click gets a 409 instead of a second backend
// call.
//
// The key is method + path + register, so two registers can act on different
// sales concurrently while one register's duplicate is blocked.
type InflightGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewInflightGuard creates a new in-flight request guard.
func NewInflightGuard() *InflightGuard {
	return &InflightGuard{
		inflight: make(map[string]struct{}),
	}
}

// Middleware returns a Gin middleware that enforces single-flight on
// mutating methods. GET requests pass through untouched.
func (g *InflightGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.Method + " " + c.Request.URL.Path + " " + GetRegisterID(c).String()

		g.mu.Lock()
		if _, busy := g.inflight[key]; busy {
			g.mu.Unlock()
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Operation already in progress",
			})
			return
		}
		g.inflight[key] = struct{}{}
		g.mu.Unlock()

		defer func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		}()

		c.Next()
	}
}
