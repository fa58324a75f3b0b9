package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one key=value line per request and recovers from
// panics with a JSON 500.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Printf(
					"request_panic method=%s path=%s client_ip=%s user_id=%d error=%q stack=%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetInt64("user_id"),
					err.Error(),
					string(debug.Stack()),
				)

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal Server Error",
					},
				})
				c.Abort()
				return
			}

			log.Printf(
				"request status=%d method=%s path=%s client_ip=%s user_id=%d latency=%s",
				c.Writer.Status(),
				c.Request.Method,
				c.Request.URL.Path,
				c.ClientIP(),
				c.GetInt64("user_id"),
				time.Since(start),
			)
		}()

		c.Next()
	}
}
