package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/zhouzirui/wealth-desk/client/internal/model/analytics"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
	portfolioService "github.com/zhouzirui/wealth-desk/client/internal/service/portfolio"
)

func setupRouter() *chi.Mux {
	svc := portfolioService.NewService(portfolio.NewMemoryStore(portfolio.Seed(), portfolio.SeedHoldings()))
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestPortfolioSummary(t *testing.T) {
	resp := get(setupRouter(), "/analytics/portfolio-summary")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body model.PortfolioSummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Summary.TotalClients != 6 {
		t.Fatalf("expected 6 clients, got %d", body.Summary.TotalClients)
	}
	if _, ok := body.Charts["risk_distribution"]; !ok {
		t.Fatal("expected risk_distribution chart")
	}
}

func TestTopPerformersHonoursLimit(t *testing.T) {
	resp := get(setupRouter(), "/analytics/top-performers?limit=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body model.TopPerformersResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.TopPortfolios) != 2 {
		t.Fatalf("expected 2 portfolios, got %d", len(body.TopPortfolios))
	}
	if body.TopPortfolios[0].ID != "client_001" {
		t.Fatalf("expected client_001 first, got %s", body.TopPortfolios[0].ID)
	}
}

func TestInvalidLimit(t *testing.T) {
	for _, target := range []string{"/analytics/top-performers?limit=abc", "/data/clients?limit=0"} {
		resp := get(setupRouter(), target)
		if resp.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", target, resp.Code)
		}
	}
}

func TestClientsLimit(t *testing.T) {
	resp := get(setupRouter(), "/data/clients?limit=3")

	var body model.ClientsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 3 || len(body.Clients) != 3 {
		t.Fatalf("expected 3 clients, got count=%d len=%d", body.Count, len(body.Clients))
	}
}
