// Package notices covers company announcements: HR posts them, employees
// list them and mark them read.
package notices

import (
	"context"
	"errors"
	"strings"

	"assetdesk/cli/internal/api"
)

// Priority orders announcements on the notice screens.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notice is one announcement.
type Notice struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Read        bool     `json:"read"`
	CreatedAt   string   `json:"createdAt"`
}

// NewNotice is the payload for posting an announcement.
type NewNotice struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// Validate checks the payload shape before it is sent.
func (n NewNotice) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("notices: title is required")
	}
	switch n.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return errors.New("notices: priority must be low, medium, or high")
}

// Service calls the /notices endpoints.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches the notices visible to the caller.
func (s *Service) List(ctx context.Context) ([]Notice, error) {
	var out []Notice
	if err := s.client.Get(ctx, "/notices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post publishes an announcement. HR only; the backend rejects other roles.
func (s *Service) Post(ctx context.Context, n NewNotice) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return s.client.Post(ctx, "/notices", n, nil)
}

// MarkRead flags a notice as read for the caller.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.client.Patch(ctx, "/notices/"+id+"/read", nil, nil)
}
