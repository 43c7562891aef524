package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every response carries the same envelope the frontend expects:
// {"success": bool, "message": string, ...}. 500s keep a generic message
// so store internals never leak to a client.

func RespondError(ctx *gin.Context, status int, message string, details gin.H) {
	body := gin.H{
		"success": false,
		"message": message,
	}

	for k, v := range details {
		body[k] = v
	}

	ctx.JSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string, details gin.H) {
	RespondError(ctx, http.StatusBadRequest, message, details)
}

func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, "Erro no servidor", nil)
}
