// Package assigned covers the caller's own assigned assets and returns.
package assigned

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"assetdesk/cli/internal/api"
)

// Item is one assignment as GET /assigned returns it.
type Item struct {
	ID          string `json:"_id"`
	AssetName   string `json:"assetName"`
	AssetType   string `json:"assetType"`
	AssetImage  string `json:"assetImage"`
	CompanyName string `json:"companyName"`
	// Status is "assigned" or "returned"; older records may omit it, which
	// counts as assigned.
	Status string `json:"status"`
}

// Returnable reports whether the item can be handed back: only Returnable
// assets that are still held.
func (it Item) Returnable() bool {
	if it.AssetType != "Returnable" {
		return false
	}
	return it.Status == "assigned" || it.Status == ""
}

// Service calls the /assigned endpoints.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// listResponse is the GET /assigned envelope.
type listResponse struct {
	Items []Item `json:"items"`
}

// List fetches up to limit of the caller's assignments.
func (s *Service) List(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 1000
	}
	var res listResponse
	if err := s.client.Get(ctx, fmt.Sprintf("/assigned?limit=%d", limit), &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Return hands the item back. The backend owns the real rule; the local
// precheck only mirrors what the backend would reject anyway.
func (s *Service) Return(ctx context.Context, it Item) error {
	if !it.Returnable() {
		return errors.New("assigned: item is not returnable")
	}
	return s.client.Patch(ctx, "/assigned/return/"+it.ID, nil, nil)
}

// Filter narrows a fetched list by name search, asset type, and status, the
// way the my-assets screen filters client-side. Empty criteria match all.
func Filter(list []Item, search, assetType, status string) []Item {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Item, 0, len(list))
	for _, it := range list {
		if search != "" && !strings.Contains(strings.ToLower(it.AssetName), search) {
			continue
		}
		if assetType != "" && it.AssetType != assetType {
			continue
		}
		if status != "" && it.Status != status {
			continue
		}
		out = append(out, it)
	}
	return out
}
