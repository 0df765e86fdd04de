package db

import (
	"tallyclank/internal/models"
)

// AutoMigrate creates or updates the three tables the service owns:
// the synced token snapshot, the chat log and the sync bookkeeping row.
func (d *DB) AutoMigrate() error {
	if d == nil || d.Gorm == nil {
		return nil
	}

	return d.Gorm.AutoMigrate(
		&models.ClankerToken{},
		&models.ChatMessage{},
		&models.SyncState{},
	)
}
