// internal/interfaces/http/handlers/review.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/review"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/apperr"
)

// ReviewHandler handles review submission endpoints
type ReviewHandler struct {
	reviewService  *review.Service
	catalogService *catalog.Service
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *review.Service, catalogService *catalog.Service) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		catalogService: catalogService,
	}
}

// Form handles GET /product/:id/review: the submission form context
func (h *ReviewHandler) Form(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// Submit handles POST /product/:id/review. Both the duplicate and the
// success outcome redirect back to the product detail page; a malformed or
// missing rating falls back to the default, while an out-of-range one is
// rejected outright.
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	productID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	rating := review.DefaultRating
	if raw := c.PostForm("rating"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			rating = parsed
		}
	}

	_, err = h.reviewService.Create(&review.CreateRequest{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   c.PostForm("comment"),
	})
	if err != nil {
		if apperr.IsDuplicate(err) {
			c.Redirect(http.StatusFound, fmt.Sprintf("/product/%d?review=duplicate", productID))
			return
		}
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/product/%d?review=success", productID))
}

// MyReviews handles GET /my-reviews: the authenticated user's reviews,
// newest first, with their products.
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	reviews, err := h.reviewService.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
	})
}
