package models

import (
	"time"

	"github.com/Rakhulsr/cristobal/app/utils/calc"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPreparing = "Hazırlanıyor"
	OrderStatusShipped   = "Kargoya Verildi"
	OrderStatusDelivered = "Teslim Edildi"
	OrderStatusCancelled = "İptal Edildi"
)

var OrderStatuses = []string{
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	Status      string          `gorm:"size:50;default:'Hazırlanıyor'" json:"status"`
	AddressID   uint            `json:"address_id"`
	PaymentID   uint            `json:"payment_id"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	Username string `gorm:"-" json:"username,omitempty"`
}

// OrderItem snapshots the product as it was at purchase time.
type OrderItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"index;not null" json:"order_id"`
	ProductID     uint            `gorm:"index;not null" json:"product_id"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Size          string          `gorm:"size:20" json:"size"`
	ProductNameTR string          `gorm:"column:name_tr;size:255" json:"name_tr"`
	ProductNameEN string          `gorm:"column:name_en;size:255" json:"name_en"`
	CoverImageURL string          `gorm:"column:cover_image_url;size:255" json:"cover_image_url"`
}

// LineTotal is the snapshot price times the ordered quantity.
func (oi *OrderItem) LineTotal() decimal.Decimal {
	return calc.LineTotal(oi.Price, oi.Quantity)
}
