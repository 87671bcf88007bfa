package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	model "github.com/zhouzirui/wealth-desk/client/internal/model/analytics"
	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
	portfolioService "github.com/zhouzirui/wealth-desk/client/internal/service/portfolio"
	"github.com/zhouzirui/wealth-desk/client/pkg/utils"
)

const (
	defaultTopLimit  = 10
	defaultListLimit = 50
)

// Handler 分析与数据管理接口的HTTP处理器
type Handler struct {
	portfolioSvc *portfolioService.Service
}

// New 创建分析处理器
func New(portfolioSvc *portfolioService.Service) *Handler {
	return &Handler{portfolioSvc: portfolioSvc}
}

// RegisterRoutes 注册分析与数据相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/analytics/portfolio-summary", h.handlePortfolioSummary)
	r.Get("/analytics/top-performers", h.handleTopPerformers)
	r.Get("/data/clients", h.handleClients)
	r.Get("/data/relationship-managers", h.handleRelationshipManagers)
	r.Post("/data/initialize-sample-data", h.handleInitializeSampleData)
}

// handlePortfolioSummary 汇总资产规模、风险分布与客户经理业绩
func (h *Handler) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	risk := h.portfolioSvc.RiskDistribution()
	managers := h.portfolioSvc.ManagerPerformance(0)

	utils.RespondJSON(w, http.StatusOK, model.PortfolioSummaryResponse{
		Summary:          h.portfolioSvc.Summary(),
		RiskDistribution: risk,
		RMPerformance:    managers,
		Charts: map[string]chat.ChartPayload{
			"risk_distribution": portfolioService.RiskChart(risk),
			"rm_performance":    portfolioService.ManagerChart("bar", managers),
		},
	})
}

// handleTopPerformers 返回排名靠前的组合、客户经理与股票
func (h *Handler) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, defaultTopLimit)
	if !ok {
		return
	}

	top := h.portfolioSvc.TopPortfolios(limit)
	utils.RespondJSON(w, http.StatusOK, model.TopPerformersResponse{
		TopPortfolios: top,
		TopRMs:        h.portfolioSvc.ManagerPerformance(limit),
		TopStocks:     h.portfolioSvc.TopStocks(limit),
		Charts: map[string]chat.ChartPayload{
			"top_portfolios": portfolioService.TopPortfoliosChart(top),
		},
	})
}

// handleClients 列出客户，支持 limit 参数
func (h *Handler) handleClients(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, defaultListLimit)
	if !ok {
		return
	}

	clients := h.portfolioSvc.Store().Clients()
	if len(clients) > limit {
		clients = clients[:limit]
	}
	utils.RespondJSON(w, http.StatusOK, model.ClientsResponse{Clients: clients, Count: len(clients)})
}

// handleRelationshipManagers 列出客户经理及其管理规模
func (h *Handler) handleRelationshipManagers(w http.ResponseWriter, r *http.Request) {
	managers := h.portfolioSvc.ManagerPerformance(0)
	utils.RespondJSON(w, http.StatusOK, model.ManagersResponse{RelationshipManagers: managers, Count: len(managers)})
}

// handleInitializeSampleData 重置为示例数据
func (h *Handler) handleInitializeSampleData(w http.ResponseWriter, r *http.Request) {
	h.portfolioSvc.Store().Reset(portfolio.Seed(), portfolio.SeedHoldings())
	utils.RespondJSON(w, http.StatusOK, model.DataResponse{Message: "Sample data initialized successfully", Count: 1})
}

// parseLimit 解析 limit 查询参数，非法时直接写回 422
func parseLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		utils.RespondError(w, http.StatusUnprocessableEntity, "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}
