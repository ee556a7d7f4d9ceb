package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeboard/internal/domain"
	"tradeboard/internal/pkg/response"
)

// RequireRole ensures the authenticated user carries one of the listed roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role.(string) == string(r) {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly admits admins and the owner.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleOwner)
}

// OwnerOnly admits the owner.
func OwnerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner)
}
