// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartManager *cart.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartManager *cart.Manager) *CartHandler {
	return &CartHandler{
		cartManager: cartManager,
	}
}

// ViewCart handles GET /cart
func (h *CartHandler) ViewCart(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	view, err := h.cartManager.View(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lines":           view.Lines,
		"total":           view.Total,
		"formatted_total": view.GetFormattedTotal(),
	})
}

// Add handles /add/:product_id: one more unit, then back to the listing
func (h *CartHandler) Add(c *gin.Context) {
	h.mutate(c, h.cartManager.Add, "/")
}

// Increase handles /increase/:product_id
func (h *CartHandler) Increase(c *gin.Context) {
	h.mutate(c, h.cartManager.Increase, "/cart")
}

// Decrease handles /decrease/:product_id
func (h *CartHandler) Decrease(c *gin.Context) {
	h.mutate(c, h.cartManager.Decrease, "/cart")
}

// Remove handles /remove/:product_id
func (h *CartHandler) Remove(c *gin.Context) {
	h.mutate(c, h.cartManager.Remove, "/cart")
}

// Clear handles /clear
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	if err := h.cartManager.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) mutate(c *gin.Context, op func(ctx context.Context, sessionID string, productID uint) error, redirectTo string) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	sessionID := middleware.GetSessionIDFromContext(c)
	if err := op(c.Request.Context(), sessionID, productID); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, redirectTo)
}
