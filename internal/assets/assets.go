// Package assets covers the HR inventory: listing, registering, editing, and
// deleting assets. All business rules (stock decrement, limits) live in the
// backend; this only shapes requests and responses.
package assets

import (
	"context"
	"errors"
	"strings"

	"assetdesk/cli/internal/api"
)

// ProductType distinguishes assets the employee must give back from
// consumables.
type ProductType string

const (
	TypeReturnable    ProductType = "Returnable"
	TypeNonReturnable ProductType = "Non-returnable"
)

// Asset is one inventory record as the backend returns it.
type Asset struct {
	ID                string      `json:"_id"`
	ProductName       string      `json:"productName"`
	ProductType       ProductType `json:"productType"`
	ProductQuantity   int         `json:"productQuantity"`
	AvailableQuantity int         `json:"availableQuantity"`
	ProductImage      string      `json:"productImage"`
	DateAdded         string      `json:"dateAdded"`
}

// Available reports whether at least one unit can still be requested.
func (a Asset) Available() bool { return a.AvailableQuantity > 0 }

// NewAsset is the payload for registering or editing an asset.
type NewAsset struct {
	ProductName     string      `json:"productName"`
	ProductType     ProductType `json:"productType"`
	ProductQuantity int         `json:"productQuantity"`
	ProductImage    string      `json:"productImage"`
}

// Validate checks the payload shape before it is sent.
func (n NewAsset) Validate() error {
	if strings.TrimSpace(n.ProductName) == "" {
		return errors.New("assets: product name is required")
	}
	if n.ProductType != TypeReturnable && n.ProductType != TypeNonReturnable {
		return errors.New("assets: product type must be Returnable or Non-returnable")
	}
	if n.ProductQuantity < 1 {
		return errors.New("assets: product quantity must be at least 1")
	}
	return nil
}

// Service calls the /assets endpoints.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// listResponse is the GET /assets envelope.
type listResponse struct {
	Assets []Asset `json:"assets"`
}

// List fetches all assets visible to the caller.
func (s *Service) List(ctx context.Context) ([]Asset, error) {
	var res listResponse
	if err := s.client.Get(ctx, "/assets", &res); err != nil {
		return nil, err
	}
	return res.Assets, nil
}

// Get fetches one asset by id.
func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	var a Asset
	if err := s.client.Get(ctx, "/assets/"+id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Add registers a new asset.
func (s *Service) Add(ctx context.Context, n NewAsset) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return s.client.Post(ctx, "/assets", n, nil)
}

// Update replaces an asset's editable fields.
func (s *Service) Update(ctx context.Context, id string, n NewAsset) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return s.client.Put(ctx, "/assets/"+id, n, nil)
}

// Delete removes an asset from the inventory.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/assets/"+id, nil)
}

// Filter narrows a fetched list by case-insensitive name search and an
// optional product type, the way the request screen filters client-side.
// An empty productType matches everything.
func Filter(list []Asset, search string, productType ProductType) []Asset {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Asset, 0, len(list))
	for _, a := range list {
		if search != "" && !strings.Contains(strings.ToLower(a.ProductName), search) {
			continue
		}
		if productType != "" && a.ProductType != productType {
			continue
		}
		out = append(out, a)
	}
	return out
}
