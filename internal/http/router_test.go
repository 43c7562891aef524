package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PedroSilva44/sistema-de-login/internal/auth"
	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	apphttp "github.com/PedroSilva44/sistema-de-login/internal/http"
	"github.com/PedroSilva44/sistema-de-login/internal/repo/memory"
	"github.com/PedroSilva44/sistema-de-login/internal/security"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Env:        "test",
		JWTSecret:  "test-secret-key",
		JWTTTLDays: 7,
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, *memory.UsersRepo, *auth.Manager) {
	t.Helper()

	repo := memory.NewUsersRepo()
	cfg := testConfig()
	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLDays)*24*time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := apphttp.NewRouter(apphttp.RouterDeps{
		Log:   logger,
		Cfg:   cfg,
		Users: repo,
		JWT:   jwtManager,
	})

	return router, repo, jwtManager
}

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))

	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func seedAdmin(t *testing.T, repo *memory.UsersRepo) user.User {
	t.Helper()

	hash, err := security.HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	admin, err := repo.Create(context.Background(), "Administrador", "admin@email.com", hash, user.RoleAdmin)
	if err != nil {
		t.Fatalf("seeding admin failed: %v", err)
	}

	return admin
}

// The canonical walkthrough: register, login, reach the user dashboard,
// get refused at the admin endpoint.
func TestRegisterLoginDashboardFlow(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	// register
	w := doRequest(router, http.MethodPost, "/api/cadastro", `{"name":"Ana","email":"ana@x.com","password":"abcdef"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("cadastro got status %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	// login with the same credentials
	w = doRequest(router, http.MethodPost, "/api/login", `{"email":"ana@x.com","password":"abcdef"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var loginResp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	mustReadJSON(t, w, &loginResp)

	if !loginResp.Success || loginResp.Token == "" {
		t.Fatalf("login expected token, body=%s", w.Body.String())
	}

	// dashboard with the issued token
	w = doRequest(router, http.MethodGet, "/api/user/dashboard", "", loginResp.Token)

	if w.Code != http.StatusOK {
		t.Fatalf("dashboard got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var dashResp struct {
		Success bool `json:"success"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	mustReadJSON(t, w, &dashResp)

	if dashResp.User.Email != "ana@x.com" {
		t.Fatalf("dashboard user email = %q, want ana@x.com", dashResp.User.Email)
	}

	// the same token must not open the admin endpoint
	w = doRequest(router, http.MethodGet, "/api/admin/estatisticas", "", loginResp.Token)

	if w.Code != http.StatusForbidden {
		t.Fatalf("estatisticas(user token) got status %d, want %d, body=%s", w.Code, http.StatusForbidden, w.Body.String())
	}
}

func TestDuplicateRegistration(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body := `{"name":"Ana","email":"ana@x.com","password":"abcdef"}`

	w := doRequest(router, http.MethodPost, "/api/cadastro", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("first cadastro got status %d, body=%s", w.Code, w.Body.String())
	}

	// different name and password, same email: still a conflict
	w = doRequest(router, http.MethodPost, "/api/cadastro", `{"name":"Outra","email":"ana@x.com","password":"zzzzzz"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate cadastro got status %d, want %d", w.Code, http.StatusBadRequest)
	}

	if !strings.Contains(w.Body.String(), "Email já cadastrado!") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAdminStatistics(t *testing.T) {
	router, repo, _ := setupTestRouter(t)

	seedAdmin(t, repo)

	for _, u := range []string{`{"name":"Ana","email":"ana@x.com","password":"abcdef"}`, `{"name":"Bia","email":"bia@x.com","password":"abcdef"}`} {
		if w := doRequest(router, http.MethodPost, "/api/cadastro", u, ""); w.Code != http.StatusCreated {
			t.Fatalf("cadastro got status %d, body=%s", w.Code, w.Body.String())
		}
	}

	w := doRequest(router, http.MethodPost, "/api/login", `{"email":"admin@email.com","password":"admin123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin login got status %d, body=%s", w.Code, w.Body.String())
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	mustReadJSON(t, w, &loginResp)

	w = doRequest(router, http.MethodGet, "/api/admin/estatisticas", "", loginResp.Token)

	if w.Code != http.StatusOK {
		t.Fatalf("estatisticas got status %d, body=%s", w.Code, w.Body.String())
	}

	var stats struct {
		Success    bool `json:"success"`
		TotalUsers int  `json:"totalUsers"`
		Users      []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"users"`
	}
	mustReadJSON(t, w, &stats)

	if stats.TotalUsers != 3 || len(stats.Users) != 3 {
		t.Fatalf("totalUsers = %d, len(users) = %d, want 3/3", stats.TotalUsers, len(stats.Users))
	}

	// newest registration first
	if stats.Users[0].Email != "bia@x.com" {
		t.Fatalf("users[0].email = %q, want bia@x.com", stats.Users[0].Email)
	}

	// hashes must never appear in the listing
	if strings.Contains(w.Body.String(), "$2") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("statistics response leaks password material: %s", w.Body.String())
	}
}

func TestProtectedRouteRejections(t *testing.T) {
	router, repo, _ := setupTestRouter(t)

	// expired token for an existing user
	hash, err := security.HashPassword("abcdef")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	ana, err := repo.Create(context.Background(), "Ana", "ana@x.com", hash, user.RoleUser)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	expired := auth.NewManager("test-secret-key", -time.Minute)
	expiredToken, err := expired.Issue(ana.ID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		wantBody string
	}{
		{name: "no token", token: "", wantBody: "Token não fornecido"},
		{name: "garbage token", token: "abc.def.ghi", wantBody: "Token inválido"},
		{name: "expired token", token: expiredToken, wantBody: "Token inválido"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/api/user/dashboard", "", tc.token)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
			}

			if !strings.Contains(w.Body.String(), tc.wantBody) {
				t.Fatalf("body %q does not contain %q", w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestTokenForDeletedUser(t *testing.T) {
	router, repo, jwtManager := setupTestRouter(t)

	hash, err := security.HashPassword("abcdef")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	ana, err := repo.Create(context.Background(), "Ana", "ana@x.com", hash, user.RoleUser)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	token, err := jwtManager.Issue(ana.ID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	repo.Delete(ana.ID)

	w := doRequest(router, http.MethodGet, "/api/user/dashboard", "", token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), "Usuário não encontrado") {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := doRequest(router, http.MethodGet, path, "", "")

		if w.Code != http.StatusOK {
			t.Fatalf("%s got status %d, want %d", path, w.Code, http.StatusOK)
		}
	}
}

func TestRequireJSONOnWrites(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a@x.com","password":"x"}`))
	// no Content-Type on purpose

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnsupportedMediaType)
	}
}
