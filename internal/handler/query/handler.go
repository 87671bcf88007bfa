package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/wealth-desk/client/internal/middleware"
	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	chatService "github.com/zhouzirui/wealth-desk/client/internal/service/chat"
	portfolioService "github.com/zhouzirui/wealth-desk/client/internal/service/portfolio"
	"github.com/zhouzirui/wealth-desk/client/pkg/utils"
)

// Handler 自然语言问答接口的HTTP处理器
type Handler struct {
	chatSvc      *chatService.Service
	portfolioSvc *portfolioService.Service
}

// New 创建问答处理器
func New(chatSvc *chatService.Service, portfolioSvc *portfolioService.Service) *Handler {
	return &Handler{chatSvc: chatSvc, portfolioSvc: portfolioSvc}
}

// RegisterRoutes 注册问答相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/query/ask", h.handleAsk)
	r.Get("/query/conversations", h.handleListConversations)
	r.Delete("/query/conversations/{conversationID}", h.handleDeleteConversation)
}

type askRequest struct {
	Question       string  `json:"question"`
	ConversationID *string `json:"conversation_id"`
	IncludeCharts  *bool   `json:"include_charts"`
}

type askResponse struct {
	Answer         string             `json:"answer"`
	ChartData      *chat.ChartPayload `json:"chart_data"`
	ConversationID string             `json:"conversation_id"`
	Sources        []string           `json:"sources"`
}

// handleAsk 回答问题并在需要时分配会话ID
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload askRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Question) == "" {
		utils.RespondError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	principal, _ := middleware.PrincipalFrom(r.Context())
	var requested string
	if payload.ConversationID != nil {
		requested = *payload.ConversationID
	}

	conv, err := h.chatSvc.Resolve(r.Context(), requested, principal.Username)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process query: %v", err))
		return
	}

	history, err := h.chatSvc.LoadTranscript(r.Context(), conv.ID)
	if err != nil {
		log.Printf("[query] failed to load transcript for conversation=%s: %v", conv.ID, err)
	}

	answer := h.answer(payload.Question, history)
	if err := h.chatSvc.SaveTurn(r.Context(), conv.ID, chat.Turn{Question: payload.Question, Answer: answer}); err != nil {
		log.Printf("[query] failed to save turn for conversation=%s: %v", conv.ID, err)
	}

	var chart *chat.ChartPayload
	if payload.IncludeCharts == nil || *payload.IncludeCharts {
		chart = h.chart(payload.Question)
	}

	utils.RespondJSON(w, http.StatusOK, askResponse{
		Answer:         answer,
		ChartData:      chart,
		ConversationID: conv.ID,
		Sources:        []string{"Portfolio Store"},
	})
}

// handleListConversations 列出所有会话ID
func (h *Handler) handleListConversations(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]string{
		"conversations": h.chatSvc.List(r.Context()),
	})
}

// handleDeleteConversation 删除指定会话
func (h *Handler) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	if err := h.chatSvc.Delete(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrConversationNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Conversation deleted"})
}

// answer 根据问题关键词和会话历史生成基于数据的固定回复，不调用语言模型
func (h *Handler) answer(question string, history []chat.Turn) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "previous question") || strings.Contains(q, "last question"):
		if len(history) == 0 {
			return "This is the first question in this conversation."
		}
		return fmt.Sprintf("Your previous question was: %q", history[len(history)-1].Question)
	case strings.Contains(q, "top") && strings.Contains(q, "portfolio"):
		top := h.portfolioSvc.TopPortfolios(5)
		names := make([]string, len(top))
		for i, c := range top {
			names[i] = fmt.Sprintf("%s (%s)", c.Name, utils.FormatCrores(float64(c.TotalPortfolioValue)))
		}
		return "Top portfolios by value: " + strings.Join(names, ", ") + "."
	case strings.Contains(q, "relationship manager"):
		managers := h.portfolioSvc.ManagerPerformance(0)
		parts := make([]string, len(managers))
		for i, m := range managers {
			parts[i] = fmt.Sprintf("%s manages %d clients worth %s", m.ManagerName, m.ClientCount, utils.FormatCrores(m.TotalAUM))
		}
		return strings.Join(parts, "; ") + "."
	default:
		summary := h.portfolioSvc.Summary()
		return fmt.Sprintf("The book holds %d clients with %s under management. Ask about top portfolios or relationship managers for a breakdown.",
			summary.TotalClients, utils.FormatCrores(summary.TotalAUM))
	}
}

// chart 为排行与客户经理类问题生成图表数据
func (h *Handler) chart(question string) *chat.ChartPayload {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "portfolio") && strings.Contains(q, "top"):
		c := portfolioService.TopPortfoliosChart(h.portfolioSvc.TopPortfolios(5))
		return &c
	case strings.Contains(q, "relationship manager"):
		c := portfolioService.ManagerChart("pie", h.portfolioSvc.ManagerPerformance(0))
		return &c
	default:
		return nil
	}
}
