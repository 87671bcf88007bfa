package analytics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	model "github.com/zhouzirui/wealth-desk/client/internal/model/analytics"
)

const (
	PortfolioSummaryPath     = "/api/v1/analytics/portfolio-summary"
	TopPerformersPath        = "/api/v1/analytics/top-performers"
	ClientsPath              = "/api/v1/data/clients"
	RelationshipManagersPath = "/api/v1/data/relationship-managers"
	InitializeSampleDataPath = "/api/v1/data/initialize-sample-data"
)

// Doer is the transport surface the Service needs.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Service reads dashboard aggregates and raw listings from the API.
type Service struct {
	api Doer
}

// NewService creates an analytics Service.
func NewService(api Doer) *Service {
	return &Service{api: api}
}

// PortfolioSummary returns book-wide totals, risk buckets and RM performance.
func (s *Service) PortfolioSummary(ctx context.Context) (*model.PortfolioSummaryResponse, error) {
	var resp model.PortfolioSummaryResponse
	if err := s.api.Do(ctx, http.MethodGet, PortfolioSummaryPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to load portfolio summary: %w", err)
	}
	return &resp, nil
}

// TopPerformers returns the largest portfolios, managers and stock positions.
func (s *Service) TopPerformers(ctx context.Context, limit int) (*model.TopPerformersResponse, error) {
	var resp model.TopPerformersResponse
	if err := s.api.Do(ctx, http.MethodGet, withLimit(TopPerformersPath, limit), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to load top performers: %w", err)
	}
	return &resp, nil
}

// Clients lists client records.
func (s *Service) Clients(ctx context.Context, limit int) (*model.ClientsResponse, error) {
	var resp model.ClientsResponse
	if err := s.api.Do(ctx, http.MethodGet, withLimit(ClientsPath, limit), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return &resp, nil
}

// RelationshipManagers lists managers ordered by assets under management.
func (s *Service) RelationshipManagers(ctx context.Context) (*model.ManagersResponse, error) {
	var resp model.ManagersResponse
	if err := s.api.Do(ctx, http.MethodGet, RelationshipManagersPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list relationship managers: %w", err)
	}
	return &resp, nil
}

// InitializeSampleData asks the backend to load its sample dataset.
func (s *Service) InitializeSampleData(ctx context.Context) (*model.DataResponse, error) {
	var resp model.DataResponse
	if err := s.api.Do(ctx, http.MethodPost, InitializeSampleDataPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to initialize sample data: %w", err)
	}
	return &resp, nil
}

func withLimit(path string, limit int) string {
	if limit <= 0 {
		return path
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return path + "?" + q.Encode()
}
