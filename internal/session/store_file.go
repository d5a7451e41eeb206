package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is a TokenStore backed by a single JSON file, the CLI analog of
// the browser's durable storage key. The file is owner-readable only.
type FileStore struct {
	path string
}

// storedCredential is the on-disk shape of the token file.
type storedCredential struct {
	Token string `json:"token"`
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenPath returns the conventional token file location under the
// user's config dir, or a path relative to the working directory if the
// config dir cannot be resolved.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".assetdesk", "token.json")
	}
	return filepath.Join(dir, "assetdesk", "token.json")
}

// Save writes the token, overwriting any existing value. Failures are logged
// and swallowed: a session that cannot persist still works for this run.
func (s *FileStore) Save(token string) {
	raw, err := json.MarshalIndent(storedCredential{Token: token}, "", "  ")
	if err != nil {
		log.Printf("session: encode token file: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Printf("session: mkdir token dir: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		log.Printf("session: write token file: %v", err)
	}
}

// Load returns the stored token, or ("", false) if the file is missing,
// unreadable, or holds no token.
func (s *FileStore) Load() (string, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var sc storedCredential
	if err := json.Unmarshal(raw, &sc); err != nil {
		return "", false
	}
	tok := strings.TrimSpace(sc.Token)
	if tok == "" {
		return "", false
	}
	return tok, true
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("session: remove token file: %v", err)
	}
}
