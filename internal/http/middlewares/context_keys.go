package middlewares

import (
	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	"github.com/gin-gonic/gin"
)

const (
	CtxRequestID = "request_id"
	ctxUserKey   = "auth.user"
)

// UserFromContext returns the user hydrated by RequireAuth. Handlers and
// the role gate read identity from here and nowhere else.
func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)
	return u, ok
}

func setUser(c *gin.Context, u user.User) {
	c.Set(ctxUserKey, u)
}
