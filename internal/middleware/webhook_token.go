package middleware

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// WebhookTokenAuth protects processor callback endpoints using a static
// bearer token from WEBHOOK_TOKEN.
func WebhookTokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logWebhookFailure(c, "missing_auth")
			writeWebhookError(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logWebhookFailure(c, "invalid_auth_format")
			writeWebhookError(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			return
		}

		expected := os.Getenv("WEBHOOK_TOKEN")
		if expected == "" {
			logWebhookFailure(c, "token_not_configured")
			writeWebhookError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Webhook token is not configured")
			return
		}

		if parts[1] != expected {
			logWebhookFailure(c, "invalid_token")
			writeWebhookError(c, http.StatusForbidden, "AUTH_INVALID", "Invalid webhook token")
			return
		}

		c.Next()
	}
}

func writeWebhookError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func logWebhookFailure(c *gin.Context, reason string) {
	log.Printf("webhook_auth_failure reason=%s method=%s path=%s client_ip=%s",
		reason, c.Request.Method, c.Request.URL.Path, c.ClientIP())
}
