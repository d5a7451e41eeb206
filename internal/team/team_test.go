package team

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetdesk/cli/internal/api"
)

func TestMember_DisplayFallbacks(t *testing.T) {
	m := Member{EmployeeName: "Maya", EmployeeEmail: "maya@corp.test"}
	if m.DisplayName() != "Maya" {
		t.Errorf("DisplayName = %q, want legacy employeeName", m.DisplayName())
	}
	if m.DisplayEmail() != "maya@corp.test" {
		t.Errorf("DisplayEmail = %q, want legacy employeeEmail", m.DisplayEmail())
	}
	m = Member{Name: "Noa", Email: "noa@corp.test", EmployeeName: "old", EmployeeEmail: "old@corp.test"}
	if m.DisplayName() != "Noa" || m.DisplayEmail() != "noa@corp.test" {
		t.Error("current fields should win over legacy ones")
	}
}

func TestTeamByCompany_EscapesName(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := NewService(api.NewClient(server.URL, nil))
	if _, err := svc.TeamByCompany(context.Background(), "Acme & Co"); err != nil {
		t.Fatalf("TeamByCompany: %v", err)
	}
	if gotPath != "/users/team/Acme%20&%20Co" {
		t.Errorf("path = %q, want escaped company name", gotPath)
	}
}

func TestTeamByCompany_RequiresName(t *testing.T) {
	svc := NewService(api.NewClient("http://example.invalid", nil))
	if _, err := svc.TeamByCompany(context.Background(), " "); err == nil {
		t.Fatal("blank company name should fail before any request")
	}
}

func TestAffiliationsEmployees_Paths(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"_id":"x","companyName":"Corp Ltd"}]`))
	}))
	defer server.Close()

	svc := NewService(api.NewClient(server.URL, nil))
	affs, err := svc.Affiliations(context.Background())
	if err != nil {
		t.Fatalf("Affiliations: %v", err)
	}
	if gotPath != "/users/affiliations" || len(affs) != 1 {
		t.Errorf("path = %q affs = %+v, want /users/affiliations with one record", gotPath, affs)
	}
	if _, err := svc.Employees(context.Background()); err != nil {
		t.Fatalf("Employees: %v", err)
	}
	if gotPath != "/users/employees" {
		t.Errorf("path = %q, want /users/employees", gotPath)
	}
}
