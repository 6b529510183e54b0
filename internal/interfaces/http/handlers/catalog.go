// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/review"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CatalogHandler handles product browsing endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	reviewService  *review.Service
	cartManager    *cart.Manager
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service, reviewService *review.Service, cartManager *cart.Manager) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
		cartManager:    cartManager,
	}
}

// Home handles the root listing page with search and category filters
func (h *CatalogHandler) Home(c *gin.Context) {
	var req catalog.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	listing, err := h.catalogService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	// The cart leaks into the listing only as an item count for display.
	sessionID := middleware.GetSessionIDFromContext(c)
	cartCount, err := h.cartManager.Count(c.Request.Context(), sessionID)
	if err != nil {
		cartCount = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"products":          listing.Products,
		"categories":        listing.Categories,
		"query":             listing.Query,
		"selected_category": listing.CategoryID,
		"cart_count":        cartCount,
	})
}

// ProductDetail handles GET /product/:id
func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := h.catalogService.Get(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	reviews, err := h.reviewService.ListForProduct(product.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	related, err := h.catalogService.Related(product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":          product,
		"formatted_price":  product.GetFormattedPrice(),
		"reviews":          reviews,
		"average_rating":   review.AverageRating(reviews),
		"related_products": related,
	})
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
