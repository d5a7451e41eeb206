package domain

import "testing"

func TestRole_Validate(t *testing.T) {
	for _, role := range []Role{RoleHR, RoleEmployee} {
		if err := role.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", role, err)
		}
	}
	for _, role := range []Role{"", "admin", "HR"} {
		if err := role.Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", role)
		}
	}
}

func TestRole_DashboardPath(t *testing.T) {
	if got := RoleHR.DashboardPath(); got != "/dashboard/hr" {
		t.Errorf("hr dashboard = %q", got)
	}
	if got := RoleEmployee.DashboardPath(); got != "/dashboard/employee" {
		t.Errorf("employee dashboard = %q", got)
	}
}

func TestIdentity_Merge(t *testing.T) {
	base := Identity{ID: "u1", Name: "Dana", Email: "dana@corp.test", Role: RoleEmployee, DateOfBirth: "1990-01-01"}

	name := "Dana B."
	img := "https://img.corp.test/dana.png"
	got := base.Merge(Patch{Name: &name, ProfileImage: &img})

	if got.Name != name || got.ProfileImage != img {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if got.ID != "u1" || got.Email != "dana@corp.test" || got.DateOfBirth != "1990-01-01" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if base.Name != "Dana" {
		t.Error("Merge mutated the receiver")
	}
}

func TestIdentity_MergeEmptyPatchIsIdentity(t *testing.T) {
	base := Identity{ID: "u1", Name: "Dana", Role: RoleHR, PackageLimit: 5}
	if got := base.Merge(Patch{}); got != base {
		t.Errorf("Merge(zero patch) = %+v, want %+v", got, base)
	}
}
