package models

import (
	"time"

	"github.com/gamestore/admin-backend/pkg/enums"
	"gorm.io/gorm"
)

// AdminUser is a staff account for the store backoffice.
type AdminUser struct {
	ID         string         `gorm:"column:id;primaryKey"`
	Identifier string         `gorm:"column:identifier;not null"`
	Nickname   string         `gorm:"column:nickname;not null"`
	Email      string         `gorm:"column:email;not null"`
	Password   string         `gorm:"column:password;not null"`
	Permission enums.Role     `gorm:"column:permission;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
