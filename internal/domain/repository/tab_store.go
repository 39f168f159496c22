package repository

import (
	"context"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
)

// TabStore persists tab and group collections as one atomic unit.
// Implementations must degrade read failures (missing data, corrupt
// payloads, legacy formats that cannot be parsed) to empty collections
// rather than surfacing errors: persistence corruption means "no saved
// state", never a broken manager.
type TabStore interface {
	// Load reads the persisted snapshot. Never returns nil data on a
	// nil error.
	Load(ctx context.Context) (*entity.StoredTabData, error)

	// Save writes tabs and groups atomically as one serialized unit.
	Save(ctx context.Context, data *entity.StoredTabData) error

	// Clear removes all persisted tab/group data.
	Clear(ctx context.Context) error
}
