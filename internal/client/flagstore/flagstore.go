// Package flagstore implements the ephemeral flag store: a small,
// synchronous key/value store for session-scoped scalars and small JSON
// blobs (identity, active selection, drafts, response caches).
//
// Values are held as opaque serialized JSON and round-trip through
// marshal/unmarshal without loss of nested structure. There is no schema
// versioning, no TTL, and no atomicity across keys. Everything here is
// disposable: it is either reconstructable from the remote store or safe to
// discard.
package flagstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Well-known keys.
const (
	KeyDeviceID        = "device_id"
	KeyUserID          = "user_id"
	KeyActiveProjectID = "active_project_id"
	KeyDrafts          = "current_reports"
	KeyAICache         = "ai_cache"
)

// Store is a mutex-guarded in-memory map mirrored to a JSON state file.
// All methods are synchronous; persistence is a single atomic file replace
// per write.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]json.RawMessage
}

// Open loads the state file at path, creating an empty store when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("decode state file: %w", err)
		}
	}
	return s, nil
}

// Set serializes v and overwrites the value under key unconditionally.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal flag %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = data
	return s.persistLocked()
}

// Get deserializes the value under key into out. The boolean result reports
// whether the key was present.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	data, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode flag %q: %w", key, err)
	}
	return true, nil
}

// GetString returns the string stored under key, or "" when absent or not a
// string.
func (s *Store) GetString(key string) string {
	var v string
	if ok, err := s.Get(key, &v); !ok || err != nil {
		return ""
	}
	return v
}

// SetString stores a plain string under key.
func (s *Store) SetString(key, value string) error {
	return s.Set(key, value)
}

// Delete removes the value under key. Absent keys are a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.persistLocked()
}

// DeviceID returns the stable device identifier, generating and persisting
// one on first use. This is the only identity the client invents locally;
// the durable user id always comes from the remote store.
func (s *Store) DeviceID() (string, error) {
	if id := s.GetString(KeyDeviceID); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := s.SetString(KeyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
