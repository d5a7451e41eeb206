package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetdesk/cli/internal/api"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"Abcdef", false},
		{"Abc12", true},      // too short
		{"abcdef", true},     // no uppercase
		{"ABCDEF", true},     // no lowercase
		{"Sup3rSecret", false},
	}
	for _, c := range cases {
		err := ValidatePassword(c.password)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidatePassword(%q) = %v, wantErr=%v", c.password, err, c.wantErr)
		}
	}
}

func TestRegisterHR_PostsPayload(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register/hr" {
			t.Errorf("path = %q, want /auth/register/hr", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := NewService(NewMemoryStore(), api.NewClient(server.URL, nil))
	reg := HRRegistration{
		Name: "Noa", Email: "noa@corp.test", Password: "Secret1",
		CompanyName: "Corp Ltd", DateOfBirth: "1990-04-02",
	}
	if err := svc.RegisterHR(context.Background(), reg); err != nil {
		t.Fatalf("RegisterHR: %v", err)
	}
	if got["companyName"] != "Corp Ltd" {
		t.Errorf("companyName = %q, want Corp Ltd", got["companyName"])
	}
	if svc.Snapshot().Status != StatusResolving {
		t.Error("registration must not mutate session state")
	}
}

func TestRegisterHR_RequiresCompany(t *testing.T) {
	svc := NewService(NewMemoryStore(), api.NewClient("http://example.invalid", nil))
	err := svc.RegisterHR(context.Background(), HRRegistration{
		Name: "Noa", Email: "noa@corp.test", Password: "Secret1",
	})
	if err == nil {
		t.Fatal("RegisterHR without a company should fail before any request")
	}
}

func TestRegisterEmployee_RejectsWeakPassword(t *testing.T) {
	svc := NewService(NewMemoryStore(), api.NewClient("http://example.invalid", nil))
	err := svc.RegisterEmployee(context.Background(), EmployeeRegistration{
		Name: "Maya", Email: "maya@corp.test", Password: "weak",
	})
	if err == nil {
		t.Fatal("weak password should be rejected before any request")
	}
}
