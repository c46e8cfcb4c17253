package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a product that can be added to a bill
type MenuItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	Name      string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu"
}
