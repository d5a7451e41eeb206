package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"assetdesk/cli/internal/api"
	"assetdesk/cli/internal/identity/domain"
)

// Status is the session resolution state. resolving is strictly transient
// and entered exactly once, at construction.
type Status string

const (
	StatusResolving     Status = "resolving"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Snapshot is a read-only view of the session for guards and screens.
// Identity is non-nil if and only if Status is StatusAuthenticated.
type Snapshot struct {
	Status   Status
	Identity *domain.Identity
}

// LoginResult is the login endpoint's success payload. Callers use the
// identity's role to choose a dashboard to land on.
type LoginResult struct {
	Token    string          `json:"token"`
	Identity domain.Identity `json:"user"`
}

// Service is the single authoritative in-memory representation of the
// current user, synchronized with the token store and the backend identity
// endpoint. It exclusively owns session state; everything else reads
// snapshots. Construct one per process and inject it.
type Service struct {
	store  TokenStore
	client *api.Client

	mu           sync.Mutex
	status       Status
	identity     *domain.Identity
	bootstrapped bool
}

// NewService returns a Service in the resolving state. Call Bootstrap before
// any guard decision is made.
func NewService(store TokenStore, client *api.Client) *Service {
	return &Service{
		store:  store,
		client: client,
		status: StatusResolving,
	}
}

// Bootstrap performs the one-time startup resolution of stored credential to
// session status. With no stored token, or a token whose exp claim is already
// in the past, it settles to anonymous without a network call. Otherwise it
// fetches the identity; any failure (expired, invalid, unreachable) clears
// the store and settles to anonymous. Repeat calls after the first resolution
// are no-ops.
func (s *Service) Bootstrap(ctx context.Context) Status {
	s.mu.Lock()
	if s.bootstrapped {
		st := s.status
		s.mu.Unlock()
		return st
	}
	s.bootstrapped = true
	s.mu.Unlock()

	token, ok := s.store.Load()
	if !ok {
		return s.settle(StatusAnonymous, nil, "")
	}
	if claims, ok := PeekClaims(token); ok && claims.Expired(time.Now()) {
		s.store.Clear()
		return s.settle(StatusAnonymous, nil, "")
	}

	s.client.SetCredential(token)
	var id domain.Identity
	if err := s.client.Get(ctx, "/users/me", &id); err != nil {
		s.store.Clear()
		return s.settle(StatusAnonymous, nil, "")
	}
	return s.settle(StatusAuthenticated, &id, token)
}

// Login exchanges email and password for a credential and identity. On
// success the credential is persisted and the session becomes authenticated.
// On failure session state is left exactly as it was and the backend's
// message propagates to the caller for display.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := s.client.Post(ctx, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("session: login response carried no token")
	}
	s.store.Save(res.Token)
	id := res.Identity
	s.settle(StatusAuthenticated, &id, res.Token)
	return &res, nil
}

// Logout clears the token store, the cached identity, and the HTTP client's
// default credential. Always succeeds; idempotent.
func (s *Service) Logout() {
	s.store.Clear()
	s.settle(StatusAnonymous, nil, "")
}

// Refresh re-fetches the identity with the current credential, replacing the
// cached record (e.g. after a completed payment changed subscription limits).
// A credential rejection behaves like a failed bootstrap: everything is
// cleared and the session settles to anonymous. Other errors propagate
// unchanged with the session state untouched.
func (s *Service) Refresh(ctx context.Context) error {
	var id domain.Identity
	if err := s.client.Get(ctx, "/users/me", &id); err != nil {
		if api.IsAuthError(err) {
			s.store.Clear()
			s.settle(StatusAnonymous, nil, "")
			return nil
		}
		return err
	}
	s.mu.Lock()
	s.status = StatusAuthenticated
	s.identity = &id
	s.mu.Unlock()
	return nil
}

// UpdateIdentityLocally merges the patch into the cached identity without a
// network round-trip, so screens reflect a just-made change before the next
// full refresh. A no-op unless authenticated. Never fails.
func (s *Service) UpdateIdentityLocally(patch domain.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated || s.identity == nil {
		return
	}
	merged := s.identity.Merge(patch)
	s.identity = &merged
}

// UpdateProfile patches the user's own record on the backend, then applies
// the same patch locally pending the next refresh.
func (s *Service) UpdateProfile(ctx context.Context, patch domain.Patch) error {
	if s.Snapshot().Status != StatusAuthenticated {
		return ErrNotAuthenticated
	}
	if err := s.client.Patch(ctx, "/users/me", patch, nil); err != nil {
		return err
	}
	s.UpdateIdentityLocally(patch)
	return nil
}

// Snapshot returns a read-only copy of the current session state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Status: s.status}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

// settle applies a terminal state transition and keeps the HTTP client's
// default credential in step with it.
func (s *Service) settle(status Status, id *domain.Identity, credential string) Status {
	s.mu.Lock()
	s.status = status
	s.identity = id
	s.mu.Unlock()
	s.client.SetCredential(credential)
	return status
}
