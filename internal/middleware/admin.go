package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

// AdminOnly gates a route group on allow-list membership. Must sit behind
// UserAuth.
func AdminOnly(admins service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		isAdmin, err := admins.IsAdmin(c.Request.Context(), user.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("admin privileges required"))
			return
		}

		c.Next()
	}
}
