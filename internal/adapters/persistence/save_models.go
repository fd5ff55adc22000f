package persistence

import (
	"time"
)

// SaveSlotModel represents the save_slots table. The snapshot travels
// as an lz4-compressed JSON blob with a blake3 checksum of the
// uncompressed bytes.
type SaveSlotModel struct {
	Name        string    `gorm:"column:name;primaryKey;not null"`
	SavedAt     time.Time `gorm:"column:saved_at;not null"`
	GameTime    float64   `gorm:"column:game_time;not null;default:0"`
	TotalProbes int64     `gorm:"column:total_probes;not null;default:0"`
	Checksum    string    `gorm:"column:checksum;not null"`
	Compressed  bool      `gorm:"column:compressed;not null;default:true"`
	Blob        []byte    `gorm:"column:blob;type:blob;not null"`
}

func (SaveSlotModel) TableName() string {
	return "save_slots"
}
