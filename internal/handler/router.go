package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/wealth-desk/client/internal/handler/analytics"
	"github.com/zhouzirui/wealth-desk/client/internal/handler/auth"
	"github.com/zhouzirui/wealth-desk/client/internal/handler/query"
	middlewarePkg "github.com/zhouzirui/wealth-desk/client/internal/middleware"
	authService "github.com/zhouzirui/wealth-desk/client/internal/service/auth"
	chatService "github.com/zhouzirui/wealth-desk/client/internal/service/chat"
	portfolioService "github.com/zhouzirui/wealth-desk/client/internal/service/portfolio"
	"github.com/zhouzirui/wealth-desk/client/pkg/utils"
)

// NewRouter wires the /api/v1 contract to the development services.
func NewRouter(authSvc *authService.Service, chatSvc *chatService.Service, portfolioSvc *portfolioService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	authHandler := auth.New(authSvc)
	queryHandler := query.New(chatSvc, portfolioSvc)
	analyticsHandler := analytics.New(portfolioSvc)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(api chi.Router) {
		authHandler.RegisterRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(middlewarePkg.RequireBearer(authSvc))

			authHandler.RegisterProtectedRoutes(protected)
			queryHandler.RegisterRoutes(protected)
			analyticsHandler.RegisterRoutes(protected)
		})
	})

	return r
}
