package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a purchasable item scoped to a server.
type Product struct {
	ID          string          `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null"`
	ImageURL    string          `gorm:"column:image_url"`
	ServerID    string          `gorm:"column:server_id;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Active      bool            `gorm:"column:active;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at;index"`

	Server   *Server          `gorm:"foreignKey:ServerID"`
	Benefits []ProductBenefit `gorm:"foreignKey:ProductID"`
	Commands []ProductCommand `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// ProductBenefit is a bullet point shown on a product's storefront card.
type ProductBenefit struct {
	ID          string         `gorm:"column:id;primaryKey"`
	ProductID   string         `gorm:"column:product_id;not null"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (ProductBenefit) TableName() string {
	return "products_benefits"
}

// ProductCommand is a console command executed on the game server when the
// product is delivered.
type ProductCommand struct {
	ID        string         `gorm:"column:id;primaryKey"`
	ProductID string         `gorm:"column:product_id;not null"`
	Name      string         `gorm:"column:name;not null"`
	Command   string         `gorm:"column:command;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (ProductCommand) TableName() string {
	return "products_commands"
}
