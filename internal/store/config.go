package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/mailconf/internal/model"
)

// ErrNotFound is returned when no configuration exists for an
// organization code.
var ErrNotFound = errors.New("configuration not found")

// ConfigStore is the process-wide mapping from organization code to
// email configuration. Entries live only as long as the process; a
// restart discards everything. All operations are safe for concurrent
// use, so a Create racing a Delete on the same code serializes rather
// than interleaving.
type ConfigStore struct {
	mu      sync.RWMutex
	configs map[string]model.EmailConfig
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{configs: make(map[string]model.EmailConfig)}
}

// Get returns a copy of the configuration stored under code. Callers
// never share a record with the store.
func (s *ConfigStore) Get(code string) (*model.EmailConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &cfg, nil
}

// Put inserts or replaces the configuration stored under code. The
// replacement is unconditional and whole; there is no merging.
func (s *ConfigStore) Put(code string, cfg *model.EmailConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs[code] = *cfg
}

// Delete removes the configuration stored under code.
func (s *ConfigStore) Delete(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[code]; !ok {
		return ErrNotFound
	}
	delete(s.configs, code)
	return nil
}

// List returns every organization code with a stored configuration,
// sorted for deterministic responses.
func (s *ConfigStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.configs))
	for code := range s.configs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
