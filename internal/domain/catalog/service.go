// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
)

// RelatedLimit caps how many same-category products a detail view lists.
const RelatedLimit = 4

// Service handles catalog business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// ListRequest represents product listing query parameters
type ListRequest struct {
	Query      string `form:"q"`
	CategoryID uint   `form:"category"`
}

// Listing represents the product listing page context
type Listing struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Query      string     `json:"query,omitempty"`
	CategoryID uint       `json:"selected_category,omitempty"`
}

// List retrieves products filtered by free-text query and category, plus the
// full category list for the filter UI.
func (s *Service) List(req *ListRequest) (*Listing, error) {
	var products []Product

	query := s.db.Model(&Product{}).Preload("Category")

	if req.Query != "" {
		search := "%" + strings.ToLower(req.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}

	return &Listing{
		Products:   products,
		Categories: categories,
		Query:      req.Query,
		CategoryID: req.CategoryID,
	}, nil
}

// Get retrieves a single product by ID
func (s *Service) Get(id uint) (*Product, error) {
	var product Product
	result := s.db.Preload("Category").Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// Related lists up to RelatedLimit products sharing the product's category,
// excluding the product itself. Uncategorized products have no related set.
func (s *Service) Related(product *Product) ([]Product, error) {
	if product.CategoryID == nil {
		return []Product{}, nil
	}

	var related []Product
	err := s.db.
		Where("category_id = ? AND id <> ?", *product.CategoryID, product.ID).
		Limit(RelatedLimit).
		Find(&related).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve related products: %w", err)
	}
	return related, nil
}

// ListCategories retrieves all categories ordered by name
func (s *Service) ListCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateCategory creates a new category
func (s *Service) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", apperr.ErrValidation)
	}

	category := Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category %q already exists: %w", name, apperr.ErrValidation)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// DeleteCategory deletes a category. Products referencing it keep existing
// with their category reference nulled by the foreign key.
func (s *Service) DeleteCategory(id uint) error {
	result := s.db.Delete(&Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"` // In cents
	CategoryID  *uint  `json:"category_id"`
	Image       string `json:"image"`
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	if req.CategoryID != nil {
		var category Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d: %w", *req.CategoryID, apperr.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	product := Product{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	CategoryID  *uint   `json:"category_id"`
	Image       *string `json:"image"`
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive: %w", apperr.ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.Get(id)
}

// DeleteProduct deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
