package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterIDHeader identifies which physical register a request belongs to.
// Each register keeps its own cart; two browser tabs with different IDs are
// two independent registers.
const RegisterIDHeader = "X-Register-ID"

// defaultRegisterID is used when the header is absent, so a single-register
// shop works with zero client configuration.
var defaultRegisterID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// RegisterMiddleware resolves the register ID from the request header and
// stores it in the Gin context. A malformed ID is rejected rather than
// silently mapped to the default, which would merge two registers' carts.
func RegisterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(RegisterIDHeader)
		if raw == "" {
			c.Set("register_id", defaultRegisterID)
			c.Next()
			return
		}

		registerID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(400, gin.H{
				"success": false,
				"message": "Invalid " + RegisterIDHeader + " header",
			})
			return
		}

		c.Set("register_id", registerID)
		c.Next()
	}
}

// GetRegisterID retrieves the register ID from gin context
func GetRegisterID(c *gin.Context) uuid.UUID {
	registerID, exists := c.Get("register_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := registerID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
