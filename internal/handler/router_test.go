package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
	sessionModel "github.com/zhouzirui/wealth-desk/client/internal/model/session"
	analyticsClient "github.com/zhouzirui/wealth-desk/client/internal/service/analytics"
	authService "github.com/zhouzirui/wealth-desk/client/internal/service/auth"
	chatService "github.com/zhouzirui/wealth-desk/client/internal/service/chat"
	"github.com/zhouzirui/wealth-desk/client/internal/service/conversation"
	portfolioService "github.com/zhouzirui/wealth-desk/client/internal/service/portfolio"
	"github.com/zhouzirui/wealth-desk/client/internal/service/session"
	"github.com/zhouzirui/wealth-desk/client/internal/store/token"
	"github.com/zhouzirui/wealth-desk/client/internal/transport"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := NewRouter(
		authService.NewService(authService.SeedUsers(), 0),
		chatService.NewService(),
		portfolioService.NewService(portfolio.NewMemoryStore(portfolio.Seed(), portfolio.SeedHoldings())),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newAPI(t *testing.T, srv *httptest.Server) *transport.Client {
	t.Helper()
	api, err := transport.New(transport.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return api
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/analytics/portfolio-summary", "/api/v1/query/conversations"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestLoginAskAndAnalyticsEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	api := newAPI(t, srv)
	ctx := context.Background()

	mgr := session.NewManager(api, token.NewMemoryStore(""))
	require.NoError(t, mgr.Login(ctx, "admin", "admin123"))
	require.Equal(t, sessionModel.StateLoggedIn, mgr.State())
	assert.Equal(t, "admin", mgr.Identity().Name())
	assert.Equal(t, "admin", mgr.Identity().Role())

	client := conversation.NewClient(api)
	reply, err := client.Ask(ctx, "What are the top five portfolios of our wealth members?")
	require.NoError(t, err)
	assert.False(t, reply.Failed)
	assert.Contains(t, reply.Content, "Rajesh Kumar")
	chart, err := chat.DecodeChart(reply.Chart)
	require.NoError(t, err)
	require.NotNil(t, chart)
	assert.Equal(t, "bar", chart.Type)
	assert.Equal(t, float64(1500), chart.Data.Datasets[0].Data[0])
	assert.Equal(t, "conv_1", client.ConversationID())

	_, err = client.Ask(ctx, "Tell me the top relationship managers in my firm")
	require.NoError(t, err)
	assert.Equal(t, "conv_1", client.ConversationID())

	ids, err := client.ListConversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"conv_1"}, ids)

	msgs := client.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, chat.RoleUser, msgs[2].Role)
	assert.Equal(t, chat.RoleAssistant, msgs[3].Role)

	stats := analyticsClient.NewService(api)
	summary, err := stats.PortfolioSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Summary.TotalClients)
	assert.Contains(t, summary.Charts, "risk_distribution")

	top, err := stats.TopPerformers(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, top.TopPortfolios, 3)

	clients, err := stats.Clients(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, clients.Count)

	managers, err := stats.RelationshipManagers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, managers.Count)

	ack, err := stats.InitializeSampleData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ack.Count)
}

func TestAskAfterLogoutRecordsFailure(t *testing.T) {
	srv := newTestServer(t)
	api := newAPI(t, srv)
	ctx := context.Background()

	mgr := session.NewManager(api, token.NewMemoryStore(""))
	require.NoError(t, mgr.Login(ctx, "analyst", "analyst123"))
	mgr.Logout()

	client := conversation.NewClient(api)
	reply, err := client.Ask(ctx, "show me risk distribution")
	require.NoError(t, err)
	assert.True(t, reply.Failed)
	assert.Equal(t, "Sorry, I encountered an error: Not authenticated", reply.Content)
	assert.Len(t, client.Messages(), 2)
}

func TestLoginWithBadPasswordSurfacesDetail(t *testing.T) {
	srv := newTestServer(t)
	api := newAPI(t, srv)

	mgr := session.NewManager(api, token.NewMemoryStore(""))
	err := mgr.Login(context.Background(), "admin", "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", transport.DetailOf(err))
	assert.Equal(t, sessionModel.StateLoggedOut, mgr.State())
}

func TestDeleteUnknownConversation(t *testing.T) {
	srv := newTestServer(t)
	api := newAPI(t, srv)
	ctx := context.Background()

	mgr := session.NewManager(api, token.NewMemoryStore(""))
	require.NoError(t, mgr.Login(ctx, "manager", "manager123"))

	err := conversation.NewClient(api).DeleteConversation(ctx, "conv_404")
	require.Error(t, err)
	assert.Equal(t, "Conversation not found", transport.DetailOf(err))
}
