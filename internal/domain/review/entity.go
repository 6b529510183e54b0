// internal/domain/review/entity.go
package review

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
)

// Review represents a user's rating and comment for a product. The composite
// unique index enforces at most one review per (user, product) pair at the
// database level, closing the window between the friendly pre-check and the
// insert.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	Rating    int       `gorm:"not null;default:5;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product,omitempty"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}
