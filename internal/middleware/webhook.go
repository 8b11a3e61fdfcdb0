package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-bridge/internal/config"
)

// WebhookAuth guards the automation-platform routes with a shared secret.
// An empty configured token disables the check (local development).
func WebhookAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.WebhookToken == "" {
			c.Next()
			return
		}

		got := c.GetHeader("X-Webhook-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.WebhookToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_webhook_token"})
			return
		}

		c.Next()
	}
}
