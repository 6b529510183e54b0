// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
)

// CartReader is the slice of the cart manager checkout depends on
type CartReader interface {
	View(ctx context.Context, sessionID string) (*cart.View, error)
	Clear(ctx context.Context, sessionID string) error
}

// Service handles checkout and order history
type Service struct {
	db   *gorm.DB
	cart CartReader
}

// NewService creates a new order service
func NewService(db *gorm.DB, cartReader CartReader) *Service {
	return &Service{
		db:   db,
		cart: cartReader,
	}
}

// CheckoutRequest carries the contact fields required to place an order
type CheckoutRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Address string `form:"address" json:"address"`
}

// Validate checks that all contact fields are non-empty
func (r *CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("name, email and address are required: %w", apperr.ErrValidation)
	}
	return nil
}

// Checkout converts the session cart into a persisted order.
//
// Every cart line is re-resolved against the live catalog at this instant;
// the per-line price captured on the order item is the product's current
// price, not whatever it was when the item entered the cart. The order and
// all of its items are written in a single transaction, and the cart is
// cleared only after the transaction commits. A validation failure leaves
// the cart untouched.
func (s *Service) Checkout(ctx context.Context, userID *uint, sessionID string, req *CheckoutRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	view, err := s.cart.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	placed := Order{
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		Total:   view.Total,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&placed).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range view.Lines {
			item := OrderItem{
				OrderID:   placed.ID,
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				Price:     line.Product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			placed.Items = append(placed.Items, item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("order %d placed but cart not cleared: %w", placed.ID, err)
	}

	return &placed, nil
}

// History retrieves a user's orders, newest first, with their items
func (s *Service) History(userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// Get retrieves a single order owned by the given user. Another user's order
// is indistinguishable from a missing one.
func (s *Service) Get(userID, orderID uint) (*Order, error) {
	var placed Order
	result := s.db.
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&placed)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &placed, nil
}
