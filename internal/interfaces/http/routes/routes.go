// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/review"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"gorm.io/gorm"
)

// SetupRoutes wires every storefront route onto the router. Pages are
// mounted at the root so the cart and checkout redirects land on browsable
// paths rather than API prefixes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	catalogService := catalog.NewService(db)
	reviewService := review.NewService(db)
	userService := user.NewService(db, cfg)

	cartStore := cart.NewRedisStore(redisClient, cfg.Session.CartTTL)
	cartManager := cart.NewManager(cartStore, catalogService)

	orderService := order.NewService(db, cartManager)
	pdfService := pdf.NewService(cfg)

	setupCatalogRoutes(r, catalogService, reviewService, cartManager)
	setupCartRoutes(r, cartManager)
	setupCheckoutRoutes(r, orderService, cartManager, cfg)
	setupOrderRoutes(r, orderService, pdfService, cfg)
	setupReviewRoutes(r, reviewService, catalogService, cfg)
	setupAuthRoutes(r, userService, cfg)
	setupAdminRoutes(r, catalogService, cfg)
}

// setupCatalogRoutes sets up the public browsing routes
func setupCatalogRoutes(r *gin.Engine, catalogService *catalog.Service, reviewService *review.Service, cartManager *cart.Manager) {
	catalogHandler := handlers.NewCatalogHandler(catalogService, reviewService, cartManager)

	r.GET("/", catalogHandler.Home)
	r.GET("/product/:id", catalogHandler.ProductDetail)
}

// setupCartRoutes sets up the session cart routes. The mutation routes
// accept GET as well as POST; the pages link to them directly.
func setupCartRoutes(r *gin.Engine, cartManager *cart.Manager) {
	cartHandler := handlers.NewCartHandler(cartManager)

	r.GET("/cart", cartHandler.ViewCart)

	mutations := map[string]gin.HandlerFunc{
		"/add/:product_id":      cartHandler.Add,
		"/increase/:product_id": cartHandler.Increase,
		"/decrease/:product_id": cartHandler.Decrease,
		"/remove/:product_id":   cartHandler.Remove,
		"/clear":                cartHandler.Clear,
	}
	for path, handler := range mutations {
		r.GET(path, handler)
		r.POST(path, handler)
	}
}

// setupCheckoutRoutes sets up the checkout routes
func setupCheckoutRoutes(r *gin.Engine, orderService *order.Service, cartManager *cart.Manager, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(orderService, cartManager)

	checkout := r.Group("/checkout")
	checkout.Use(middleware.AuthRequired(cfg))
	{
		checkout.GET("", checkoutHandler.Show)
		checkout.POST("", checkoutHandler.Place)
	}
}

// setupOrderRoutes sets up the order history routes
func setupOrderRoutes(r *gin.Engine, orderService *order.Service, pdfService *pdf.Service, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(orderService, pdfService)

	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(cfg))
	{
		orders.GET("", orderHandler.History)
		orders.GET("/:id", orderHandler.Detail)
		orders.GET("/:id/invoice", orderHandler.Invoice)
	}
}

// setupReviewRoutes sets up the review routes
func setupReviewRoutes(r *gin.Engine, reviewService *review.Service, catalogService *catalog.Service, cfg *config.Config) {
	reviewHandler := handlers.NewReviewHandler(reviewService, catalogService)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired(cfg))
	{
		protected.GET("/product/:id/review", reviewHandler.Form)
		protected.POST("/product/:id/review", reviewHandler.Submit)
		protected.GET("/my-reviews", reviewHandler.MyReviews)
	}
}

// setupAuthRoutes sets up registration and login
func setupAuthRoutes(r *gin.Engine, userService *user.Service, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(userService, cfg)

	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
}

// setupAdminRoutes sets up catalog management, admin only
func setupAdminRoutes(r *gin.Engine, catalogService *catalog.Service, cfg *config.Config) {
	adminHandler := handlers.NewAdminHandler(catalogService)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg))
	admin.Use(middleware.AdminRequired())
	{
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	}
}
