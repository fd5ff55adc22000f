package sim

import (
	"context"
	"time"
)

// SaveSlotInfo summarizes a stored save without loading its snapshot
type SaveSlotInfo struct {
	Name       string
	SavedAt    time.Time
	GameTime   float64
	TotalProbe int64
}

// SaveRepository persists snapshots under named slots. Saving to an
// existing slot overwrites it.
type SaveRepository interface {
	Save(ctx context.Context, name string, snap *Snapshot) error
	Load(ctx context.Context, name string) (*Snapshot, error)
	List(ctx context.Context) ([]SaveSlotInfo, error)
	Delete(ctx context.Context, name string) error
}
