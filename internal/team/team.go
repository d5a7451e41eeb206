// Package team covers company affiliation and roster views: which companies
// the caller belongs to, who is on a team, and an HR manager's employee list.
package team

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"assetdesk/cli/internal/api"
)

// Affiliation links the caller to a company.
type Affiliation struct {
	ID          string `json:"_id"`
	CompanyName string `json:"companyName"`
}

// Member is one person on a team roster. Older backend records use the
// employee* field names, so both sets are decoded.
type Member struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	EmployeeName  string `json:"employeeName"`
	Email         string `json:"email"`
	EmployeeEmail string `json:"employeeEmail"`
	Role          string `json:"role"`
	ProfileImage  string `json:"profileImage"`
}

// DisplayName returns whichever name field the record carries.
func (m Member) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.EmployeeName
}

// DisplayEmail returns whichever email field the record carries.
func (m Member) DisplayEmail() string {
	if m.Email != "" {
		return m.Email
	}
	return m.EmployeeEmail
}

// Service calls the /users team endpoints.
type Service struct {
	client *api.Client
}

// NewService returns a Service using the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Affiliations fetches the companies the caller is affiliated with.
func (s *Service) Affiliations(ctx context.Context) ([]Affiliation, error) {
	var out []Affiliation
	if err := s.client.Get(ctx, "/users/affiliations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamByCompany fetches the roster of the given company.
func (s *Service) TeamByCompany(ctx context.Context, companyName string) ([]Member, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, errors.New("team: company name is required")
	}
	var out []Member
	if err := s.client.Get(ctx, "/users/team/"+url.PathEscape(companyName), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Employees fetches the HR manager's own employee list. HR only.
func (s *Service) Employees(ctx context.Context) ([]Member, error) {
	var out []Member
	if err := s.client.Get(ctx, "/users/employees", &out); err != nil {
		return nil, err
	}
	return out, nil
}
