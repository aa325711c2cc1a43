package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LowStockThreshold is the stock level at or below which a product is flagged.
const LowStockThreshold = 5

// Product is a sellable item. Prices are whole rupiah.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	SKU       *string   `gorm:"column:sku;size:100;uniqueIndex" json:"sku,omitempty"`
	BuyPrice  int64     `gorm:"not null;default:0" json:"buy_price"`
	SellPrice int64     `gorm:"not null;default:0" json:"sell_price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Margin is the gross profit per unit.
func (p *Product) Margin() int64 {
	return p.SellPrice - p.BuyPrice
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) IsLowStock() bool {
	return p.Stock <= LowStockThreshold
}

// SKUValue returns the SKU or "" when the product has none.
func (p *Product) SKUValue() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}

// MarshalJSON adds the derived margin and low-stock flag.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Margin   int64 `json:"margin"`
		LowStock bool  `json:"low_stock"`
	}{
		plain:    plain(p),
		Margin:   p.Margin(),
		LowStock: p.IsLowStock(),
	})
}
