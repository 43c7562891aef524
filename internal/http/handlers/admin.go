package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserLister interface {
	List(ctx context.Context) ([]user.User, error)
	Count(ctx context.Context) (int, error)
}

type AdminHandler struct {
	users UserLister
	log   *slog.Logger
}

func NewAdminHandler(users UserLister, log *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: log}
}

type statsUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Estatisticas returns the user count plus the full listing, newest
// first. Password hashes never cross this boundary.
func (h *AdminHandler) Estatisticas(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	total, err := h.users.Count(cctx)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "stats count failed", "err", err)
		RespondInternal(ctx)
		return
	}

	all, err := h.users.List(cctx)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "stats list failed", "err", err)
		RespondInternal(ctx)
		return
	}

	users := make([]statsUser, 0, len(all))

	for _, u := range all {
		users = append(users, statsUser{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"totalUsers": total,
		"users":      users,
	})
}
