package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireTrusted guards staff endpoints: only admin and ai-agent actors pass.
func RequireTrusted() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if !actor.Trusted() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This operation requires staff privileges.",
			})
			return
		}
		c.Next()
	}
}
