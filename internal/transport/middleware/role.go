package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
	"github.com/campusbuzz/campusbuzz-api/internal/service"
)

// RequireRole gates a route group on the current identity's role. The roles
// are flat, not hierarchical. This is a display/route gate only: the role is
// synthesized client-side from an email string and is not a verified
// credential.
func RequireRole(users service.UserService, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := users.CurrentUser()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": entity.ErrNotAuthenticated.Error()})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			gin.H{"error": entity.ErrForbidden.Error()})
	}
}
