package domain

import "errors"

// Identity is the resolved user record associated with a valid credential,
// as returned by GET /users/me. Field tags follow the backend JSON shape.
type Identity struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage"`
	CompanyName  string `json:"companyName"`
	CompanyLogo  string `json:"companyLogo"`
	// PackageLimit is the subscription's employee cap; meaningful for HR accounts.
	PackageLimit int    `json:"packageLimit"`
	DateOfBirth  string `json:"dateOfBirth"`
}

// Role is the coarse authorization category determining which guarded
// screens and dashboard a user may reach.
type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Validate reports whether the role is one of the known categories.
func (r Role) Validate() error {
	switch r {
	case RoleHR, RoleEmployee:
		return nil
	}
	return errors.New("role must be hr or employee")
}

// DashboardPath returns the route a freshly logged-in user of this role
// lands on.
func (r Role) DashboardPath() string {
	if r == RoleHR {
		return "/dashboard/hr"
	}
	return "/dashboard/employee"
}

// Merge returns a copy of i with the non-nil fields of patch applied.
// The result is a local belief, reconciled by the next full refresh.
func (i Identity) Merge(patch Patch) Identity {
	out := i
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.ProfileImage != nil {
		out.ProfileImage = *patch.ProfileImage
	}
	if patch.DateOfBirth != nil {
		out.DateOfBirth = *patch.DateOfBirth
	}
	if patch.PackageLimit != nil {
		out.PackageLimit = *patch.PackageLimit
	}
	return out
}

// Patch holds the user-editable identity fields for a partial update.
// Nil pointers mean "leave unchanged".
type Patch struct {
	Name         *string `json:"name,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty"`
	PackageLimit *int    `json:"packageLimit,omitempty"`
}
