// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/apperr"
)

// CheckoutHandler handles the two-phase checkout flow
type CheckoutHandler struct {
	orderService *order.Service
	cartManager  *cart.Manager
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orderService *order.Service, cartManager *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{
		orderService: orderService,
		cartManager:  cartManager,
	}
}

// Show handles GET /checkout: the confirmation page with the current cart
// snapshot. An empty cart renders total 0 and no lines. The authenticated
// user's email prefills the contact form.
func (h *CheckoutHandler) Show(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	view, err := h.cartManager.View(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	email, _ := middleware.GetUserEmailFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"lines":           view.Lines,
		"total":           view.Total,
		"formatted_total": view.GetFormattedTotal(),
		"email":           email,
	})
}

// Place handles POST /checkout. On validation failure the same cart snapshot
// is re-rendered with the error and the cart is left untouched; on success
// the order is persisted and the cart cleared.
func (h *CheckoutHandler) Place(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	var userID *uint
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		userID = &id
	}

	var req order.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.orderService.Checkout(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		if apperr.IsValidation(err) {
			// Re-render the confirmation page with the untouched cart.
			view, viewErr := h.cartManager.View(c.Request.Context(), sessionID)
			if viewErr != nil {
				respondError(c, viewErr)
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "Please fill in all fields.",
				"lines":           view.Lines,
				"total":           view.Total,
				"formatted_total": view.GetFormattedTotal(),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully!",
		"order":   placed,
	})
}
