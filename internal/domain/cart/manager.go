// internal/domain/cart/manager.go
package cart

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/your-org/storefront/internal/domain/catalog"
)

// ProductFinder resolves product ids against the live catalog
type ProductFinder interface {
	Get(id uint) (*catalog.Product, error)
}

// Manager handles session cart business logic.
//
// Mutations are read-modify-write against the store with no cross-request
// locking: two concurrent requests from the same session race and the last
// write wins. Acceptable for this domain; callers should not assume a
// "double-click add" yields exactly two increments.
type Manager struct {
	store    Store
	products ProductFinder
}

// NewManager creates a new cart manager
func NewManager(store Store, products ProductFinder) *Manager {
	return &Manager{
		store:    store,
		products: products,
	}
}

// Line represents one (product, quantity, price) triple within a cart view
type Line struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal int64           `json:"line_total"` // Price * Quantity, in cents
}

// View represents resolved cart contents with totals
type View struct {
	Lines []Line `json:"lines"`
	Total int64  `json:"total"` // Sum of line totals, in cents
}

// GetFormattedTotal returns the grand total as a decimal amount
func (v *View) GetFormattedTotal() float64 {
	return float64(v.Total) / 100
}

// Add increments the quantity for a product by one, creating the line at
// quantity 1 when absent.
func (m *Manager) Add(ctx context.Context, sessionID string, productID uint) error {
	return m.bump(ctx, sessionID, productID)
}

// Increase behaves exactly like Add; it exists because the two operations
// land on different pages.
func (m *Manager) Increase(ctx context.Context, sessionID string, productID uint) error {
	return m.bump(ctx, sessionID, productID)
}

func (m *Manager) bump(ctx context.Context, sessionID string, productID uint) error {
	cart, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	key := strconv.FormatUint(uint64(productID), 10)
	cart[key] = cart[key] + 1

	return m.store.Save(ctx, sessionID, cart)
}

// Decrease decrements the quantity for a product, removing the line entirely
// at quantity 1. A line is never left at quantity 0.
func (m *Manager) Decrease(ctx context.Context, sessionID string, productID uint) error {
	cart, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	key := strconv.FormatUint(uint64(productID), 10)
	if qty := cart[key]; qty > 1 {
		cart[key] = qty - 1
	} else {
		delete(cart, key)
	}

	return m.store.Save(ctx, sessionID, cart)
}

// Remove deletes the product's line if present; no-op when absent
func (m *Manager) Remove(ctx context.Context, sessionID string, productID uint) error {
	cart, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	delete(cart, strconv.FormatUint(uint64(productID), 10))

	return m.store.Save(ctx, sessionID, cart)
}

// Clear empties the session's cart
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	return m.store.Clear(ctx, sessionID)
}

// Count returns the sum of quantities across all lines
func (m *Manager) Count(ctx context.Context, sessionID string) (int, error) {
	cart, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, qty := range cart {
		count += qty
	}
	return count, nil
}

// View resolves every cart line against the live catalog and computes
// per-line and grand totals. A line whose product no longer exists fails the
// whole view with the catalog's not-found error rather than being skipped.
// Lines are sorted by product id; the backing map has no stable order.
func (m *Manager) View(ctx context.Context, sessionID string) (*View, error) {
	cart, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &View{Lines: make([]Line, 0, len(cart))}
	for key, qty := range cart {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed cart entry %q: %w", key, err)
		}

		product, err := m.products.Get(uint(id))
		if err != nil {
			return nil, err
		}

		lineTotal := product.Price * int64(qty)
		view.Lines = append(view.Lines, Line{
			Product:   *product,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		view.Total += lineTotal
	}

	sort.Slice(view.Lines, func(i, j int) bool {
		return view.Lines[i].Product.ID < view.Lines[j].Product.ID
	})

	return view, nil
}
