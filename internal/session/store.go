// Package session holds the client's belief about who is logged in: a token
// store persisting the bearer credential across runs, and a service that
// exchanges the credential for the current identity and owns all session
// state transitions.
package session

// TokenStore persists one opaque bearer credential across process runs.
type TokenStore interface {
	// Save stores the token, overwriting any existing value. Persistence
	// failures are non-fatal: the session simply will not survive a restart.
	Save(token string)
	// Load returns the stored token and whether one was present. Side-effect free.
	Load() (string, bool)
	// Clear removes the stored token unconditionally.
	Clear()
}

// MemoryStore is a TokenStore that lives only for the process lifetime.
// Used by tests and --no-persist runs.
type MemoryStore struct {
	token string
	set   bool
}

// NewMemoryStore returns an empty in-memory token store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(token string) {
	s.token = token
	s.set = true
}

func (s *MemoryStore) Load() (string, bool) {
	if !s.set || s.token == "" {
		return "", false
	}
	return s.token, true
}

func (s *MemoryStore) Clear() {
	s.token = ""
	s.set = false
}
