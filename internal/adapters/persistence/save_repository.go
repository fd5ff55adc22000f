package persistence

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/pierrec/lz4/v4"
	"gorm.io/gorm"
	"lukechampine.com/blake3"

	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// GormSaveRepository implements sim.SaveRepository using GORM
type GormSaveRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormSaveRepository creates a new GORM save repository
func NewGormSaveRepository(db *gorm.DB) *GormSaveRepository {
	return &GormSaveRepository{db: db, clock: shared.NewRealClock()}
}

// WithClock overrides the clock used for save timestamps
func (r *GormSaveRepository) WithClock(clock shared.Clock) *GormSaveRepository {
	r.clock = clock
	return r
}

// Save upserts a snapshot under the named slot
func (r *GormSaveRepository) Save(ctx context.Context, name string, snap *sim.Snapshot) error {
	if name == "" {
		return fmt.Errorf("save slot name cannot be empty")
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	blob, err := compress(raw)
	if err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}

	sum := blake3.Sum256(raw)
	model := &SaveSlotModel{
		Name:        name,
		SavedAt:     r.clock.Now(),
		GameTime:    snap.TimeDays,
		TotalProbes: totalProbes(snap),
		Checksum:    hex.EncodeToString(sum[:]),
		Compressed:  true,
		Blob:        blob,
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save slot %s: %w", name, result.Error)
	}
	return nil
}

// Load reads a snapshot back from the named slot. Legacy uncompressed
// blobs and checksum mismatches still parse; the mismatch is logged.
func (r *GormSaveRepository) Load(ctx context.Context, name string) (*sim.Snapshot, error) {
	var model SaveSlotModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("save slot not found: %s", name)
		}
		return nil, fmt.Errorf("failed to load slot %s: %w", name, result.Error)
	}

	raw := model.Blob
	if model.Compressed {
		decompressed, err := decompress(model.Blob)
		if err != nil {
			// Pre-compression saves have the flag set but plain JSON inside
			raw = model.Blob
		} else {
			raw = decompressed
		}
	}

	if model.Checksum != "" {
		sum := blake3.Sum256(raw)
		if hex.EncodeToString(sum[:]) != model.Checksum {
			log.Printf("save slot %s: checksum mismatch, loading anyway", name)
		}
	}

	var snap sim.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for slot %s: %w", name, err)
	}
	return &snap, nil
}

// List returns slot summaries without decoding any snapshots
func (r *GormSaveRepository) List(ctx context.Context) ([]sim.SaveSlotInfo, error) {
	var models []SaveSlotModel
	result := r.db.WithContext(ctx).
		Select("name", "saved_at", "game_time", "total_probes").
		Order("saved_at desc").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", result.Error)
	}

	infos := make([]sim.SaveSlotInfo, 0, len(models))
	for _, m := range models {
		infos = append(infos, sim.SaveSlotInfo{
			Name:       m.Name,
			SavedAt:    m.SavedAt,
			GameTime:   m.GameTime,
			TotalProbe: m.TotalProbes,
		})
	}
	return infos, nil
}

// Delete removes the named slot; deleting a missing slot is not an error
func (r *GormSaveRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&SaveSlotModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete slot %s: %w", name, result.Error)
	}
	return nil
}

func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(blob []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(blob)))
}

func totalProbes(snap *sim.Snapshot) int64 {
	var total int64
	for _, count := range snap.Probes {
		total += int64(count)
	}
	for _, count := range snap.LegacyProbes {
		total += int64(count)
	}
	return total
}
