package middleware

import (
	"net/http"
	"strings"

	"milkroute/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose token role does not match any of the
// allowed roles. AuthMiddleware must run first so the role claim is set.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, allowed := range roles {
			if strings.EqualFold(role, allowed) {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource", nil)
		c.Abort()
	}
}
