package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ardentsoft/stroypos/internal/config"
)

// CORSMiddleware creates a CORS middleware with the provided configuration.
// The usual caller is the kassa front-end served from localhost on the same
// machine as the terminal.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Register-ID",
			"Origin",
		}
	} else {
		// The register header must always pass preflight
		hasRegisterHeader := false
		for _, h := range corsConfig.AllowHeaders {
			if h == RegisterIDHeader {
				hasRegisterHeader = true
				break
			}
		}
		if !hasRegisterHeader {
			corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, RegisterIDHeader)
		}
	}

	return cors.New(corsConfig)
}
