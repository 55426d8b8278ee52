package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/pkg/jwt"
	"github.com/lightsmap/core/internal/pkg/response"
)

const ContextKeyRole = "role"

// AdminAuth rejects any request without a valid admin bearer token before
// the handler (and therefore storage) is reached.
func AdminAuth(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := signer.VerifyBearer(c.GetHeader("Authorization"))
		if !ok || !jwt.IsAdmin(claims) {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyRole, jwt.RoleAdmin)
		c.Next()
	}
}

// IsAdmin reports whether AdminAuth accepted the request.
func IsAdmin(c *gin.Context) bool {
	v, _ := c.Get(ContextKeyRole)
	role, _ := v.(string)
	return role == jwt.RoleAdmin
}
