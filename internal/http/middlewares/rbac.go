package middlewares

import (
	"net/http"

	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after RequireAuth; it has no way to authenticate
// on its own. The role switch is exhaustive: anything that is not exactly
// the admin role is refused, including values that should not exist.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := UserFromContext(c)

		if !ok {
			m.prom.ObserveAuth("role_gate", "missing_identity")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token não fornecido",
			})
			return
		}

		switch u.Role {
		case user.RoleAdmin:
			// allowed
		case user.RoleUser:
			fallthrough
		default:
			m.prom.ObserveAuth("role_gate", "forbidden")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Acesso negado. Admin apenas.",
			})
			return
		}

		c.Next()
	}
}
