package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/PedroSilva44/sistema-de-login/internal/auth"
	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	"github.com/PedroSilva44/sistema-de-login/internal/notifications"
	"github.com/PedroSilva44/sistema-de-login/internal/observability"
	"github.com/PedroSilva44/sistema-de-login/internal/repo/postgres"
	"github.com/PedroSilva44/sistema-de-login/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, name, email, passwordHash string, role user.Role) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	notifier   notifications.Notifier
	prom       *observability.Prom
	log        *slog.Logger
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, notifier notifications.Notifier, prom *observability.Prom, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		notifier:   notifier,
		prom:       prom,
		log:        log,
	}
}

type CadastroRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=150"`
	Password string `json:"password" binding:"required,min=6"`
	// Accepted for wire compatibility with the original frontend, but
	// never honored: letting a caller pick "admin" here would be an open
	// privilege escalation. Elevated accounts only exist via bootstrap.
	Role string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type publicUser struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

func toPublic(u user.User) publicUser {
	return publicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (h *AuthHandler) Cadastro(ctx *gin.Context) {
	var req CadastroRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.userWriter.Create(cctx, req.Name, req.Email, hash, user.RoleUser)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailTaken) {
			h.prom.ObserveAuth("register", "email_taken")
			RespondBadRequest(ctx, "Email já cadastrado!", nil)
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "cadastro failed", "err", err)
		RespondInternal(ctx)
		return
	}

	h.prom.ObserveAuth("register", "ok")

	// best effort; a failed notification never fails the registration
	if h.notifier != nil {
		err = h.notifier.SendAccountCreated(cctx, notifications.AccountCreatedInput{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
		})
		if err != nil {
			h.log.WarnContext(ctx.Request.Context(), "account notification failed", "err", err)
		}
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cadastro realizado com sucesso!",
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for the credential lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			h.prom.ObserveAuth("login", "unknown_email")
			RespondBadRequest(ctx, "Usuário não encontrado!", nil)
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "login lookup failed", "err", err)
		RespondInternal(ctx)
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.prom.ObserveAuth("login", "wrong_password")
		RespondBadRequest(ctx, "Senha incorreta!", nil)
		return
	}

	token, err := h.jwt.Issue(foundUser.ID)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	h.prom.ObserveAuth("login", "ok")

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login realizado com sucesso!",
		"token":   token,
		"user":    toPublic(foundUser),
	})
}
