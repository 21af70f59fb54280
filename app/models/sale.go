package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleStatusCompleted is the only status the checkout path writes; the
// column exists so the listing can distinguish future states.
const SaleStatusCompleted = "completed"

// Sale is a completed checkout. Sales are append-only: once recorded they
// are never edited, so the line items snapshot everything they need.
type Sale struct {
	gorm.Model
	CustomerName  string          `gorm:"size:255"                json:"customer_name"`
	CustomerEmail string          `gorm:"size:255"                json:"customer_email"`
	CustomerPhone string          `gorm:"size:32"                 json:"customer_phone"`
	Status        string          `gorm:"size:20;not null;default:completed" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SaleItem is one product/size line of a sale. ProductName and UnitPrice
// are captured at sale time so later catalogue edits never rewrite history.
type SaleItem struct {
	gorm.Model
	SaleID      uint            `gorm:"not null;index" json:"sale_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Size        string          `gorm:"size:20;not null"  json:"size"`
	Quantity    int             `gorm:"not null"          json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

// LineTotal returns unit price multiplied by quantity.
func (si SaleItem) LineTotal() decimal.Decimal {
	return si.UnitPrice.Mul(decimal.NewFromInt(int64(si.Quantity)))
}
