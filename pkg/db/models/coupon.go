package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon is a time-boxed discount redeemable at checkout by its code.
type Coupon struct {
	ID          string          `gorm:"column:id;primaryKey"`
	Code        string          `gorm:"column:code;not null"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(5,4);not null"`
	StartsAt    time.Time       `gorm:"column:starts_at;not null"`
	EndsAt      time.Time       `gorm:"column:ends_at;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Coupon) TableName() string {
	return "coupons"
}
