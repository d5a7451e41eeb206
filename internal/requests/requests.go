// Package requests covers the asset request lifecycle as the client sees it:
// employees file requests, HR lists and resolves them. Approval side effects
// (stock decrement, assignment) happen in the backend.
package requests

import (
	"context"
	"errors"
	"strings"

	"assetdesk/cli/internal/api"
)

// Status is the backend's request state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is one asset request as GET /requests/hr returns it.
type Request struct {
	ID             string `json:"_id"`
	RequesterName  string `json:"requesterName"`
	RequesterEmail string `json:"requesterEmail"`
	AssetName      string `json:"assetName"`
	AssetType      string `json:"assetType"`
	Note           string `json:"note"`
	RequestDate    string `json:"requestDate"`
	Status         Status `json:"requestStatus"`
}

// Pending reports whether the request can still be approved or rejected.
func (r Request) Pending() bool { return r.Status == StatusPending }

// Service calls the /requests endpoints.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Create files a request for the given asset with an optional note.
func (s *Service) Create(ctx context.Context, assetID, note string) error {
	if strings.TrimSpace(assetID) == "" {
		return errors.New("requests: asset id is required")
	}
	body := map[string]string{"assetId": assetID, "note": note}
	return s.client.Post(ctx, "/requests", body, nil)
}

// ListHR fetches all requests addressed to the caller's company. HR only;
// the backend rejects other roles.
func (s *Service) ListHR(ctx context.Context) ([]Request, error) {
	var out []Request
	if err := s.client.Get(ctx, "/requests/hr", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Approve grants a pending request.
func (s *Service) Approve(ctx context.Context, id string) error {
	return s.client.Patch(ctx, "/requests/approve/"+id, nil, nil)
}

// Reject declines a pending request.
func (s *Service) Reject(ctx context.Context, id string) error {
	return s.client.Patch(ctx, "/requests/reject/"+id, nil, nil)
}
