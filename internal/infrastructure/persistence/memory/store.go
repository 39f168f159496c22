// Package memory provides an in-memory TabStore for environments
// without durable storage, with the same semantics as the SQLite one.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/domain/repository"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// Store keeps the serialized snapshot in memory. It round-trips
// through JSON so callers observe the same copy semantics as a durable
// backend.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

var _ repository.TabStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Load returns the stored snapshot, or empty collections when nothing
// has been saved or the payload does not parse.
func (s *Store) Load(ctx context.Context) (*entity.StoredTabData, error) {
	s.mu.RLock()
	raw := s.data
	s.mu.RUnlock()

	if len(raw) == 0 {
		return emptyData(), nil
	}

	var data entity.StoredTabData
	if err := json.Unmarshal(raw, &data); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("discarding unparsable in-memory tab data")
		return emptyData(), nil
	}
	if data.Tabs == nil {
		data.Tabs = []entity.Tab{}
	}
	if data.Groups == nil {
		data.Groups = []entity.Group{}
	}
	return &data, nil
}

// Save stores a serialized copy of the snapshot.
func (s *Store) Save(ctx context.Context, data *entity.StoredTabData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = raw
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Int("tab_count", len(data.Tabs)).
		Int("group_count", len(data.Groups)).
		Msg("saved tab data to memory store")
	return nil
}

// Clear discards the stored snapshot.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

func emptyData() *entity.StoredTabData {
	return &entity.StoredTabData{
		Version: entity.StoredDataVersion,
		Tabs:    []entity.Tab{},
		Groups:  []entity.Group{},
	}
}
