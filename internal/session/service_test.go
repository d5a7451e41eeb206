package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"assetdesk/cli/internal/api"
	"assetdesk/cli/internal/identity/domain"
)

// fakeBackend serves /auth/login and /users/me the way the product backend
// does, counting identity fetches so tests can assert "no network call".
type fakeBackend struct {
	mu            sync.Mutex
	validToken    string
	identity      domain.Identity
	loginToken    string
	loginErr      string
	identityCalls int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.identityCalls++
		valid := b.validToken
		id := b.identity
		b.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+valid || valid == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid token"}`))
			return
		}
		w.Write(mustJSON(id))
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.loginErr != "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"` + b.loginErr + `"}`))
			return
		}
		w.Write([]byte(`{"token":"` + b.loginToken + `","user":` + string(mustJSON(b.identity)) + `}`))
	})
	return mux
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identityCalls
}

func mustJSON(id domain.Identity) []byte {
	return []byte(`{"_id":"` + id.ID + `","name":"` + id.Name + `","email":"` + id.Email + `","role":"` + string(id.Role) + `","packageLimit":0}`)
}

func newTestService(t *testing.T, backend *fakeBackend) (*Service, *MemoryStore, *api.Client) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL, nil)
	store := NewMemoryStore()
	return NewService(store, client), store, client
}

func TestBootstrap_NoStoredCredential(t *testing.T) {
	backend := &fakeBackend{}
	svc, _, _ := newTestService(t, backend)

	status := svc.Bootstrap(context.Background())
	if status != StatusAnonymous {
		t.Errorf("status = %q, want %q", status, StatusAnonymous)
	}
	snap := svc.Snapshot()
	if snap.Identity != nil {
		t.Error("identity should be nil for an anonymous session")
	}
	if backend.calls() != 0 {
		t.Errorf("identity calls = %d, want 0", backend.calls())
	}
}

func TestBootstrap_ExpiredStoredCredential(t *testing.T) {
	backend := &fakeBackend{}
	svc, store, _ := newTestService(t, backend)
	store.Save(unsignedJWT(`{"email":"maya@corp.test","role":"employee","exp":1000000000}`))

	status := svc.Bootstrap(context.Background())
	if status != StatusAnonymous {
		t.Errorf("status = %q, want %q", status, StatusAnonymous)
	}
	if backend.calls() != 0 {
		t.Errorf("identity calls = %d, want 0 for a locally expired token", backend.calls())
	}
	if _, ok := store.Load(); ok {
		t.Error("expired token should be cleared from the store")
	}
}

func TestBootstrap_StoredCredentialAccepted(t *testing.T) {
	backend := &fakeBackend{
		validToken: "tok-good",
		identity:   domain.Identity{ID: "u1", Name: "Maya", Email: "maya@corp.test", Role: domain.RoleEmployee},
	}
	svc, store, _ := newTestService(t, backend)
	store.Save("tok-good")

	status := svc.Bootstrap(context.Background())
	if status != StatusAuthenticated {
		t.Fatalf("status = %q, want %q", status, StatusAuthenticated)
	}
	snap := svc.Snapshot()
	if snap.Identity == nil || snap.Identity.ID != "u1" {
		t.Fatalf("identity = %+v, want id u1", snap.Identity)
	}
	if tok, ok := store.Load(); !ok || tok != "tok-good" {
		t.Errorf("store token = %q ok=%v, want original credential kept", tok, ok)
	}
}

func TestBootstrap_StoredCredentialRejected(t *testing.T) {
	backend := &fakeBackend{validToken: "tok-other"}
	svc, store, _ := newTestService(t, backend)
	store.Save("tok-stale")

	status := svc.Bootstrap(context.Background())
	if status != StatusAnonymous {
		t.Errorf("status = %q, want %q", status, StatusAnonymous)
	}
	if _, ok := store.Load(); ok {
		t.Error("store should be cleared after a rejected bootstrap")
	}
}

func TestBootstrap_RunsOnce(t *testing.T) {
	backend := &fakeBackend{
		validToken: "tok-good",
		identity:   domain.Identity{ID: "u1", Role: domain.RoleEmployee},
	}
	svc, store, _ := newTestService(t, backend)
	store.Save("tok-good")

	svc.Bootstrap(context.Background())
	svc.Bootstrap(context.Background())
	if backend.calls() != 1 {
		t.Errorf("identity calls = %d, want 1 (bootstrap is one-shot)", backend.calls())
	}
}

func TestLogin_Success(t *testing.T) {
	backend := &fakeBackend{
		loginToken: "tok-fresh",
		validToken: "tok-fresh",
		identity:   domain.Identity{ID: "hr1", Name: "Noa", Email: "noa@corp.test", Role: domain.RoleHR},
	}
	svc, store, client := newTestService(t, backend)
	svc.Bootstrap(context.Background())

	res, err := svc.Login(context.Background(), "noa@corp.test", "Secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := svc.Snapshot().Status; got != StatusAuthenticated {
		t.Errorf("status = %q, want %q", got, StatusAuthenticated)
	}
	if tok, ok := store.Load(); !ok || tok != "tok-fresh" {
		t.Errorf("store token = %q ok=%v, want tok-fresh", tok, ok)
	}
	if client.Credential() != "tok-fresh" {
		t.Errorf("client credential = %q, want tok-fresh", client.Credential())
	}
	if got := res.Identity.Role.DashboardPath(); got != "/dashboard/hr" {
		t.Errorf("dashboard = %q, want /dashboard/hr", got)
	}
}

func TestLogin_EmployeeDashboardPath(t *testing.T) {
	backend := &fakeBackend{
		loginToken: "tok-e",
		identity:   domain.Identity{ID: "e1", Role: domain.RoleEmployee},
	}
	svc, _, _ := newTestService(t, backend)
	svc.Bootstrap(context.Background())

	res, err := svc.Login(context.Background(), "e@corp.test", "Secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := res.Identity.Role.DashboardPath(); got != "/dashboard/employee" {
		t.Errorf("dashboard = %q, want /dashboard/employee", got)
	}
}

func TestLogin_Failure(t *testing.T) {
	backend := &fakeBackend{loginErr: "invalid credentials"}
	svc, store, _ := newTestService(t, backend)
	svc.Bootstrap(context.Background())

	_, err := svc.Login(context.Background(), "noa@corp.test", "wrong")
	if err == nil {
		t.Fatal("Login should fail")
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "invalid credentials" {
		t.Errorf("error = %v, want backend message %q", err, "invalid credentials")
	}
	if got := svc.Snapshot().Status; got != StatusAnonymous {
		t.Errorf("status = %q, want unchanged %q", got, StatusAnonymous)
	}
	if _, ok := store.Load(); ok {
		t.Error("store should be untouched by a failed login")
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	backend := &fakeBackend{
		validToken: "tok-good",
		identity:   domain.Identity{ID: "u1", Role: domain.RoleEmployee},
	}
	svc, store, client := newTestService(t, backend)
	store.Save("tok-good")
	svc.Bootstrap(context.Background())

	svc.Logout()
	svc.Logout() // idempotent

	if _, ok := store.Load(); ok {
		t.Error("store should be empty after logout")
	}
	snap := svc.Snapshot()
	if snap.Status != StatusAnonymous || snap.Identity != nil {
		t.Errorf("snapshot = %+v, want anonymous with nil identity", snap)
	}
	if client.Credential() != "" {
		t.Errorf("client credential = %q, want cleared", client.Credential())
	}
}

func TestRefresh_ReplacesIdentity(t *testing.T) {
	backend := &fakeBackend{
		validToken: "tok-good",
		identity:   domain.Identity{ID: "u1", Name: "Before", Role: domain.RoleHR},
	}
	svc, store, _ := newTestService(t, backend)
	store.Save("tok-good")
	svc.Bootstrap(context.Background())

	backend.mu.Lock()
	backend.identity.Name = "After"
	backend.mu.Unlock()

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := svc.Snapshot().Identity.Name; got != "After" {
		t.Errorf("identity name = %q, want After", got)
	}
}

func TestRefresh_InvalidCredentialDowngrades(t *testing.T) {
	backend := &fakeBackend{
		validToken: "tok-good",
		identity:   domain.Identity{ID: "u1", Role: domain.RoleEmployee},
	}
	svc, store, _ := newTestService(t, backend)
	store.Save("tok-good")
	svc.Bootstrap(context.Background())

	backend.mu.Lock()
	backend.validToken = "tok-rotated"
	backend.mu.Unlock()

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh should swallow the auth error, got %v", err)
	}
	snap := svc.Snapshot()
	if snap.Status != StatusAnonymous || snap.Identity != nil {
		t.Errorf("snapshot = %+v, want anonymous", snap)
	}
	if _, ok := store.Load(); ok {
		t.Error("store should be cleared after an invalid-credential refresh")
	}
}

func TestUpdateIdentityLocally_Merges(t *testing.T) {
	backend := &fakeBackend{
		validToken: "tok-good",
		identity:   domain.Identity{ID: "u1", Name: "Maya", Email: "maya@corp.test", Role: domain.RoleEmployee},
	}
	svc, store, _ := newTestService(t, backend)
	store.Save("tok-good")
	svc.Bootstrap(context.Background())

	newImage := "https://cdn.corp.test/avatar.png"
	svc.UpdateIdentityLocally(domain.Patch{ProfileImage: &newImage})

	snap := svc.Snapshot()
	if snap.Identity.ProfileImage != newImage {
		t.Errorf("profile image = %q, want local override applied", snap.Identity.ProfileImage)
	}
	if snap.Identity.Name != "Maya" {
		t.Errorf("name = %q, want untouched fields preserved", snap.Identity.Name)
	}
}

func TestUpdateIdentityLocally_NoopWhenAnonymous(t *testing.T) {
	backend := &fakeBackend{}
	svc, _, _ := newTestService(t, backend)
	svc.Bootstrap(context.Background())

	name := "Ghost"
	svc.UpdateIdentityLocally(domain.Patch{Name: &name})
	if svc.Snapshot().Identity != nil {
		t.Error("anonymous session should not grow an identity")
	}
}
