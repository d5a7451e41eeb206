// Package billing covers subscription upgrades through the backend's Stripe
// endpoints. The client never talks to Stripe directly: it asks the backend
// for a checkout URL and later confirms the finished payment.
package billing

import (
	"context"
	"errors"

	"assetdesk/cli/internal/api"
)

// Package is one purchasable subscription tier.
type Package struct {
	ID            string
	Name          string
	EmployeeLimit int
	// PriceUSD is the monthly price in whole dollars.
	PriceUSD int
}

// Packages returns the purchasable tiers in ascending order.
func Packages() []Package {
	return []Package{
		{ID: "basic", Name: "Basic", EmployeeLimit: 5, PriceUSD: 5},
		{ID: "standard", Name: "Standard", EmployeeLimit: 10, PriceUSD: 8},
		{ID: "premium", Name: "Premium", EmployeeLimit: 20, PriceUSD: 15},
	}
}

// PackageByID returns the tier with the given id.
func PackageByID(id string) (Package, bool) {
	for _, p := range Packages() {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// CheckoutSession is the backend's answer to a create-session call: the
// hosted checkout URL the user must open, and the session id the success
// callback will carry.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// Service calls the /stripe endpoints.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// createSessionRequest mirrors what the upgrade screen sends.
type createSessionRequest struct {
	PackageID     string `json:"packageId"`
	PackageName   string `json:"packageName"`
	EmployeeLimit int    `json:"employeeLimit"`
	Amount        int    `json:"amount"`
}

// CreateSession asks the backend for a hosted checkout session for the tier.
func (s *Service) CreateSession(ctx context.Context, pkg Package) (*CheckoutSession, error) {
	body := createSessionRequest{
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		EmployeeLimit: pkg.EmployeeLimit,
		Amount:        pkg.PriceUSD,
	}
	var out CheckoutSession
	if err := s.client.Post(ctx, "/stripe/create-session", body, &out); err != nil {
		return nil, err
	}
	if out.URL == "" {
		return nil, errors.New("billing: create-session response carried no checkout URL")
	}
	return &out, nil
}

// confirmRequest mirrors what the payment-success screen sends.
type confirmRequest struct {
	PackageName   string `json:"packageName"`
	EmployeeLimit int    `json:"employeeLimit"`
	TransactionID string `json:"transactionId"`
}

// ConfirmPayment reports a completed checkout back to the backend, which
// raises the caller's package limit. The caller should refresh the session
// identity afterwards to pick up the new limit.
func (s *Service) ConfirmPayment(ctx context.Context, pkg Package, transactionID string) error {
	if transactionID == "" {
		return errors.New("billing: transaction id is required")
	}
	body := confirmRequest{
		PackageName:   pkg.Name,
		EmployeeLimit: pkg.EmployeeLimit,
		TransactionID: transactionID,
	}
	return s.client.Post(ctx, "/stripe/payment-success", body, nil)
}
