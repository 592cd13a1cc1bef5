package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a read-only catalog entry keyed by the catalog's own ID.
// PTS and PTR are the price-to-stockist and price-to-retailer tiers.
type Product struct {
	ID        string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	SKU       string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	PTS       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pts"`
	PTR       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"ptr"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Product) TableName() string { return "products" }
