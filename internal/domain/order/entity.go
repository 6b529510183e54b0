// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
)

// Order represents a placed order. Orders are created atomically at checkout
// and immutable thereafter. UserID is nil for anonymous checkouts; the
// contact fields are always captured.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"not null;size:255" json:"email"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	Total     int64     `gorm:"not null" json:"total"` // In cents
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one line of an order. Price is the per-unit price
// captured at checkout time; later product price changes never alter it.
type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	ProductID uint  `gorm:"not null;index" json:"product_id"`
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`
	Price     int64 `gorm:"not null" json:"price"` // Per-unit price snapshot, in cents

	// Relationships
	Product *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product,omitempty"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GetFormattedTotal returns the order total as a decimal amount
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.Total) / 100
}

// GetTotal returns the line total for an order item
func (i *OrderItem) GetTotal() int64 {
	return i.Price * int64(i.Quantity)
}
