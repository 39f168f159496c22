package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/domain/repository"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// Storage keys inside the tab_storage table. The combined key holds
// the current {tabs, groups} unit; the legacy key may hold a bare
// Tab[] written by older releases and is consulted on read only.
const (
	storageKey       = "tab-manager-data"
	legacyStorageKey = "tab-manager-tabs"
)

type tabStore struct {
	db *sql.DB
}

// NewTabStore creates a SQLite-backed tab store.
func NewTabStore(db *sql.DB) repository.TabStore {
	return &tabStore{db: db}
}

// Load reads the persisted snapshot. Missing rows, corrupt payloads
// and unknown shapes all degrade to empty collections: losing saved
// state is recoverable, a manager that cannot start is not.
func (s *tabStore) Load(ctx context.Context) (*entity.StoredTabData, error) {
	log := logging.FromContext(ctx)

	raw, err := s.read(ctx, storageKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read tab data, starting empty")
		return emptyData(), nil
	}
	if raw != "" {
		var data entity.StoredTabData
		if jsonErr := json.Unmarshal([]byte(raw), &data); jsonErr == nil && data.Tabs != nil {
			if data.Groups == nil {
				data.Groups = []entity.Group{}
			}
			return &data, nil
		}
		log.Warn().Str("key", storageKey).Msg("stored tab data has unexpected shape, trying legacy format")
	}

	// Legacy format: a bare Tab[] under the old key, no groups.
	raw, err = s.read(ctx, legacyStorageKey)
	if err != nil || raw == "" {
		return emptyData(), nil
	}
	var tabs []entity.Tab
	if jsonErr := json.Unmarshal([]byte(raw), &tabs); jsonErr != nil {
		log.Warn().Err(jsonErr).Str("key", legacyStorageKey).Msg("discarding unparsable legacy tab data")
		return emptyData(), nil
	}
	log.Info().Int("tab_count", len(tabs)).Msg("loaded tabs from legacy storage format")
	return &entity.StoredTabData{
		Version: entity.StoredDataVersion,
		Tabs:    tabs,
		Groups:  []entity.Group{},
	}, nil
}

// Save writes the snapshot as one serialized unit inside a transaction.
func (s *tabStore) Save(ctx context.Context, data *entity.StoredTabData) error {
	log := logging.FromContext(ctx)
	if data == nil {
		return errors.New("tab data cannot be nil")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: marshal tab data: %v", entity.ErrPersistence, err)
	}

	log.Debug().
		Int("tab_count", len(data.Tabs)).
		Int("group_count", len(data.Groups)).
		Msg("saving tab data snapshot")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin save transaction: %v", entity.ErrPersistence, err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("save rollback reported non-terminal error")
		}
	}()

	const upsert = `
		INSERT INTO tab_storage (storage_key, data_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (storage_key) DO UPDATE SET
			data_json = excluded.data_json,
			updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, storageKey, string(raw), time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: write tab data: %v", entity.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save transaction: %v", entity.ErrPersistence, err)
	}

	return nil
}

// Clear removes both the current and the legacy rows.
func (s *tabStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM tab_storage WHERE storage_key IN (?, ?)",
		storageKey, legacyStorageKey)
	if err != nil {
		return fmt.Errorf("%w: clear tab data: %v", entity.ErrPersistence, err)
	}
	return nil
}

func (s *tabStore) read(ctx context.Context, key string) (string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT data_json FROM tab_storage WHERE storage_key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

func emptyData() *entity.StoredTabData {
	return &entity.StoredTabData{
		Version: entity.StoredDataVersion,
		Tabs:    []entity.Tab{},
		Groups:  []entity.Group{},
	}
}
