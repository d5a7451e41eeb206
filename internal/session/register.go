package session

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// HRRegistration is the sign-up payload for an HR manager account.
type HRRegistration struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo"`
	DateOfBirth string `json:"dateOfBirth"`
}

// EmployeeRegistration is the sign-up payload for an employee account.
type EmployeeRegistration struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

// RegisterHR creates an HR manager account. The session is not mutated;
// the caller logs in afterwards.
func (s *Service) RegisterHR(ctx context.Context, reg HRRegistration) error {
	if err := ValidatePassword(reg.Password); err != nil {
		return err
	}
	if strings.TrimSpace(reg.CompanyName) == "" {
		return errors.New("session: company name is required")
	}
	return s.client.Post(ctx, "/auth/register/hr", reg, nil)
}

// RegisterEmployee creates an employee account. The session is not mutated.
func (s *Service) RegisterEmployee(ctx context.Context, reg EmployeeRegistration) error {
	if err := ValidatePassword(reg.Password); err != nil {
		return err
	}
	return s.client.Post(ctx, "/auth/register/employee", reg, nil)
}

// ValidatePassword enforces the sign-up password shape before the request is
// sent: at least 6 characters with an uppercase and a lowercase letter. The
// backend remains the authority; this only saves a round-trip.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	var upper, lower bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsLower(r) {
			lower = true
		}
	}
	if !upper {
		return errors.New("password must contain an uppercase letter")
	}
	if !lower {
		return errors.New("password must contain a lowercase letter")
	}
	return nil
}
