package models

import (
	"time"

	"gorm.io/gorm"
)

// Server is a game server products are sold for.
type Server struct {
	ID          string         `gorm:"column:id;primaryKey"`
	Identifier  string         `gorm:"column:identifier;not null"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Server) TableName() string {
	return "servers"
}
