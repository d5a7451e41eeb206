// Package analytics covers the HR analytics endpoints.
package analytics

import (
	"context"

	"assetdesk/cli/internal/api"
)

// DistributionSlice is one slice of the asset type distribution chart.
type DistributionSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TopRequested is one bar of the most-requested-assets chart.
type TopRequested struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Service calls the /analytics endpoints. HR only.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// AssetsDistribution fetches the asset type distribution.
func (s *Service) AssetsDistribution(ctx context.Context) ([]DistributionSlice, error) {
	var out []DistributionSlice
	if err := s.client.Get(ctx, "/analytics/assets-distribution", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopRequested fetches the most requested assets.
func (s *Service) TopRequested(ctx context.Context) ([]TopRequested, error) {
	var out []TopRequested
	if err := s.client.Get(ctx, "/analytics/top-requested", &out); err != nil {
		return nil, err
	}
	return out, nil
}
