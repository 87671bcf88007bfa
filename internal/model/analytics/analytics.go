package analytics

import (
	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
)

// Summary aggregates the whole book of clients.
type Summary struct {
	TotalClients        int     `json:"total_clients"`
	TotalAUM            float64 `json:"total_aum"`
	AvgPortfolioValue   float64 `json:"avg_portfolio_value"`
	FilmStars           int     `json:"film_stars"`
	SportsPersonalities int     `json:"sports_personalities"`
}

// RiskBucket groups clients sharing a risk appetite.
type RiskBucket struct {
	RiskAppetite string  `json:"_id"`
	Count        int     `json:"count"`
	TotalValue   float64 `json:"total_value"`
}

// ManagerPerformance aggregates the book of one relationship manager.
type ManagerPerformance struct {
	ManagerID         string  `json:"_id"`
	ManagerName       string  `json:"manager_name"`
	ClientCount       int     `json:"client_count"`
	TotalAUM          float64 `json:"total_aum"`
	AvgPortfolioValue float64 `json:"avg_portfolio_value,omitempty"`
}

// StockConcentration aggregates all positions in one stock.
type StockConcentration struct {
	StockSymbol   string  `json:"_id"`
	StockName     string  `json:"stock_name"`
	TotalValue    float64 `json:"total_value"`
	TotalQuantity int64   `json:"total_quantity"`
	HolderCount   int     `json:"holder_count"`
}

// PortfolioSummaryResponse is the body of GET /analytics/portfolio-summary.
type PortfolioSummaryResponse struct {
	Summary          Summary                      `json:"summary"`
	RiskDistribution []RiskBucket                 `json:"risk_distribution"`
	RMPerformance    []ManagerPerformance         `json:"rm_performance"`
	Charts           map[string]chat.ChartPayload `json:"charts,omitempty"`
}

// TopPerformersResponse is the body of GET /analytics/top-performers.
type TopPerformersResponse struct {
	TopPortfolios []portfolio.Client           `json:"top_portfolios"`
	TopRMs        []ManagerPerformance         `json:"top_rms"`
	TopStocks     []StockConcentration         `json:"top_stocks"`
	Charts        map[string]chat.ChartPayload `json:"charts,omitempty"`
}

// ClientsResponse is the body of GET /data/clients.
type ClientsResponse struct {
	Clients []portfolio.Client `json:"clients"`
	Count   int                `json:"count"`
}

// ManagersResponse is the body of GET /data/relationship-managers.
type ManagersResponse struct {
	RelationshipManagers []ManagerPerformance `json:"relationship_managers"`
	Count                int                  `json:"count"`
}

// DataResponse acknowledges a data-management action.
type DataResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
