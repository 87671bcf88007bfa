package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/wealth-desk/client/internal/middleware"
	authService "github.com/zhouzirui/wealth-desk/client/internal/service/auth"
	"github.com/zhouzirui/wealth-desk/client/pkg/utils"
)

// Handler 认证接口的HTTP处理器
type Handler struct {
	authSvc *authService.Service
}

// New 创建认证处理器
func New(authSvc *authService.Service) *Handler {
	return &Handler{authSvc: authSvc}
}

// RegisterRoutes 注册公开的登录路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// RegisterProtectedRoutes 注册需要 Bearer 凭证的路由
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.handleMe)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleLogin 校验用户名密码并签发访问令牌
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	token, err := h.authSvc.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, authService.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.authSvc.TTL().Seconds()),
	})
}

// handleMe 返回当前令牌对应的用户信息
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, principal)
}
