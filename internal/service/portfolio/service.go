package portfolio

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zhouzirui/wealth-desk/client/internal/model/analytics"
	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
)

const crore = 10_000_000

// Service computes dashboard aggregates over a portfolio store.
type Service struct {
	store portfolio.Store
}

// NewService wraps store.
func NewService(store portfolio.Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying dataset.
func (s *Service) Store() portfolio.Store {
	return s.store
}

// Summary totals the whole book.
func (s *Service) Summary() analytics.Summary {
	clients := s.store.Clients()
	out := analytics.Summary{TotalClients: len(clients)}
	for _, c := range clients {
		out.TotalAUM += float64(c.TotalPortfolioValue)
		switch c.Type {
		case portfolio.TypeFilmStar:
			out.FilmStars++
		case portfolio.TypeSportsPersonality:
			out.SportsPersonalities++
		}
	}
	if out.TotalClients > 0 {
		out.AvgPortfolioValue = out.TotalAUM / float64(out.TotalClients)
	}
	return out
}

// RiskDistribution groups clients by risk appetite, ordered by name.
func (s *Service) RiskDistribution() []analytics.RiskBucket {
	index := map[string]*analytics.RiskBucket{}
	for _, c := range s.store.Clients() {
		b, ok := index[c.RiskAppetite]
		if !ok {
			b = &analytics.RiskBucket{RiskAppetite: c.RiskAppetite}
			index[c.RiskAppetite] = b
		}
		b.Count++
		b.TotalValue += float64(c.TotalPortfolioValue)
	}

	out := make([]analytics.RiskBucket, 0, len(index))
	for _, b := range index {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RiskAppetite < out[j].RiskAppetite })
	return out
}

// ManagerPerformance aggregates each relationship manager's book, largest first.
// A positive limit truncates the result.
func (s *Service) ManagerPerformance(limit int) []analytics.ManagerPerformance {
	index := map[string]*analytics.ManagerPerformance{}
	for _, c := range s.store.Clients() {
		m, ok := index[c.RelationshipManagerID]
		if !ok {
			m = &analytics.ManagerPerformance{ManagerID: c.RelationshipManagerID, ManagerName: c.RelationshipManagerName}
			index[c.RelationshipManagerID] = m
		}
		m.ClientCount++
		m.TotalAUM += float64(c.TotalPortfolioValue)
	}

	out := make([]analytics.ManagerPerformance, 0, len(index))
	for _, m := range index {
		m.AvgPortfolioValue = m.TotalAUM / float64(m.ClientCount)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAUM == out[j].TotalAUM {
			return out[i].ManagerID < out[j].ManagerID
		}
		return out[i].TotalAUM > out[j].TotalAUM
	})
	return truncate(out, limit)
}

// TopPortfolios returns clients ordered by portfolio value, largest first.
func (s *Service) TopPortfolios(limit int) []portfolio.Client {
	clients := s.store.Clients()
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].TotalPortfolioValue > clients[j].TotalPortfolioValue
	})
	return truncate(clients, limit)
}

// TopStocks aggregates holdings per stock, largest total value first.
func (s *Service) TopStocks(limit int) []analytics.StockConcentration {
	index := map[string]*analytics.StockConcentration{}
	for _, h := range s.store.Holdings() {
		st, ok := index[h.StockSymbol]
		if !ok {
			st = &analytics.StockConcentration{StockSymbol: h.StockSymbol, StockName: h.StockName}
			index[h.StockSymbol] = st
		}
		st.TotalValue += float64(h.CurrentValue)
		st.TotalQuantity += h.Quantity
		st.HolderCount++
	}

	out := make([]analytics.StockConcentration, 0, len(index))
	for _, st := range index {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValue == out[j].TotalValue {
			return out[i].StockSymbol < out[j].StockSymbol
		}
		return out[i].TotalValue > out[j].TotalValue
	})
	return truncate(out, limit)
}

// RiskChart renders a risk distribution as a pie chart in crores.
func RiskChart(buckets []analytics.RiskBucket) chat.ChartPayload {
	labels := make([]string, len(buckets))
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.RiskAppetite
		values[i] = b.TotalValue / crore
	}
	return chat.ChartPayload{
		Type:  "pie",
		Title: "Portfolio Distribution by Risk Appetite",
		Data: chat.ChartData{Labels: labels, Datasets: []chat.ChartDataset{{
			Data:            values,
			BackgroundColor: colors("#FF6384", "#36A2EB", "#FFCE56"),
		}}},
	}
}

// ManagerChart renders manager AUM as a chart of the given kind in crores.
func ManagerChart(kind string, managers []analytics.ManagerPerformance) chat.ChartPayload {
	labels := make([]string, len(managers))
	values := make([]float64, len(managers))
	for i, m := range managers {
		labels[i] = m.ManagerName
		values[i] = m.TotalAUM / crore
	}
	title := "Assets Under Management by Relationship Manager"
	dataset := chat.ChartDataset{Label: "AUM (₹ Crores)", Data: values, BackgroundColor: colors("rgba(54, 162, 235, 0.6)")}
	if kind == "pie" {
		title = "Portfolio Distribution by Relationship Manager"
		dataset = chat.ChartDataset{Data: values, BackgroundColor: colors(
			"rgba(255, 99, 132, 0.6)",
			"rgba(54, 162, 235, 0.6)",
			"rgba(255, 205, 86, 0.6)",
			"rgba(75, 192, 192, 0.6)",
			"rgba(153, 102, 255, 0.6)",
		)}
	}
	return chat.ChartPayload{
		Type:  kind,
		Title: title,
		Data:  chat.ChartData{Labels: labels, Datasets: []chat.ChartDataset{dataset}},
	}
}

// TopPortfoliosChart renders portfolio values as a bar chart in crores.
func TopPortfoliosChart(clients []portfolio.Client) chat.ChartPayload {
	labels := make([]string, len(clients))
	values := make([]float64, len(clients))
	for i, c := range clients {
		labels[i] = c.Name
		values[i] = float64(c.TotalPortfolioValue) / crore
	}
	return chat.ChartPayload{
		Type:  "bar",
		Title: fmt.Sprintf("Top %d Portfolios by Value", len(clients)),
		Data: chat.ChartData{Labels: labels, Datasets: []chat.ChartDataset{{
			Label:           "Portfolio Value (₹ Crores)",
			Data:            values,
			BackgroundColor: colors("rgba(75, 192, 192, 0.6)"),
		}}},
	}
}

// colors encodes a single color as a JSON string and several as a list.
func colors(values ...string) json.RawMessage {
	var raw []byte
	if len(values) == 1 {
		raw, _ = json.Marshal(values[0])
	} else {
		raw, _ = json.Marshal(values)
	}
	return raw
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
