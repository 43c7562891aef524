package handlers

import (
	"net/http"

	"github.com/PedroSilva44/sistema-de-login/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Dashboard only echoes the identity the auth gate hydrated; there is no
// further store access here.
func (h *DashboardHandler) Dashboard(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		// gate not mounted; a wiring bug, not a client error
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bem-vindo, " + u.Name + "!",
		"user":    toPublic(u),
	})
}
