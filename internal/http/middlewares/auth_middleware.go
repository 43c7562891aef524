package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	"github.com/PedroSilva44/sistema-de-login/internal/observability"
	"github.com/gin-gonic/gin"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserFinder
	prom  *observability.Prom
}

func NewAuthMiddleware(jwt TokenVerifier, users UserFinder, prom *observability.Prom) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users, prom: prom}
}

// RequireAuth verifies the bearer token and re-reads the user from the
// store on every call. No caching: a deleted user or changed role takes
// effect on the very next request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

		if !strings.HasPrefix(authHeader, "Bearer ") || raw == "" {
			m.prom.ObserveAuth("gate", "missing_token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token não fornecido",
			})
			return
		}

		userID, err := m.jwt.Verify(raw)
		if err != nil {
			m.prom.ObserveAuth("gate", "invalid_token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token inválido",
			})
			return
		}

		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		u, err := m.users.GetByID(cctx, userID)
		if err != nil {
			// deleted user and store failure both fail closed as 401
			m.prom.ObserveAuth("gate", "unknown_user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Usuário não encontrado",
			})
			return
		}

		m.prom.ObserveAuth("gate", "ok")
		setUser(c, u)

		c.Next()
	}
}
