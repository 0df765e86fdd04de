package models

import (
	"time"
)

type ChatMessage struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Address     string    `gorm:"type:text;index;not null" json:"address"`
	DisplayName string    `gorm:"type:text;not null" json:"display_name"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;index;autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "world_chat"
}
