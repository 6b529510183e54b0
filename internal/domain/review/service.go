// internal/domain/review/service.go
package review

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
)

// DefaultRating is assumed when a submission carries no parseable rating.
const DefaultRating = 5

// Service handles review business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new review service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// CreateRequest represents review submission data
type CreateRequest struct {
	ProductID uint
	UserID    uint
	Rating    int
	Comment   string
}

// Create stores a user's first review for a product. A rating outside 1-5 is
// rejected. A second submission for the same (user, product) pair fails with
// a duplicate error, from the pre-check in the common case and from the
// unique index when two submissions race.
func (s *Service) Create(req *CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", apperr.ErrValidation)
	}

	// Verify the product still exists
	var productExists int64
	if err := s.db.Table("products").Where("id = ?", req.ProductID).Count(&productExists).Error; err != nil {
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}
	if productExists == 0 {
		return nil, fmt.Errorf("product %d: %w", req.ProductID, apperr.ErrNotFound)
	}

	// Friendly duplicate check before hitting the unique index
	var existing Review
	result := s.db.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).First(&existing)
	if result.Error == nil {
		return nil, fmt.Errorf("product %d already reviewed: %w", req.ProductID, apperr.ErrDuplicateSubmission)
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", result.Error)
	}

	review := Review{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("product %d already reviewed: %w", req.ProductID, apperr.ErrDuplicateSubmission)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &review, nil
}

// ListForProduct retrieves all reviews for a product, newest first
func (s *Service) ListForProduct(productID uint) ([]Review, error) {
	var reviews []Review
	err := s.db.
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// ListForUser retrieves all reviews written by a user, newest first, with
// their associated products.
func (s *Service) ListForUser(userID uint) ([]Review, error) {
	var reviews []Review
	err := s.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// AverageRating computes the arithmetic mean rating rounded to one decimal
// place. An empty slice yields 0.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
