package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/config"
	"github.com/ikkim/bookstore-backend/internal/app/controller"
	"github.com/ikkim/bookstore-backend/internal/middleware"
)

type Router struct {
	cartController     *controller.CartController
	userController     *controller.UserController
	wishlistController *controller.WishlistController
	bookController     *controller.BookController
	authorController   *controller.AuthorController
	reviewController   *controller.ReviewController
	healthController   *controller.HealthController
	config             *config.Config
}

func NewRouter(
	cartController *controller.CartController,
	userController *controller.UserController,
	wishlistController *controller.WishlistController,
	bookController *controller.BookController,
	authorController *controller.AuthorController,
	reviewController *controller.ReviewController,
	healthController *controller.HealthController,
	cfg *config.Config,
) *Router {
	return &Router{
		cartController:     cartController,
		userController:     userController,
		wishlistController: wishlistController,
		bookController:     bookController,
		authorController:   authorController,
		reviewController:   reviewController,
		healthController:   healthController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	// Both "/path" and "/path/" are registered below instead of redirecting,
	// so POST bodies are never dropped by a 307.
	router.RedirectTrailingSlash = false

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.healthController.Health)

	users := router.Group("/users")
	{
		handle(users, "POST", "/", r.userController.CreateUser)
		users.GET("/:username", r.userController.GetUser)
		users.PUT("/:username", r.userController.UpdateUser)

		cart := users.Group("/:username/shopping_cart")
		{
			handle(cart, "POST", "/", r.cartController.CreateCart)
			handle(cart, "GET", "/", r.cartController.GetCart)
			handle(cart, "DELETE", "/", r.cartController.DeleteCart)
			handle(cart, "POST", "/items/", r.cartController.AddItem)
			cart.DELETE("/items/:item_id", r.cartController.RemoveItem)
			cart.PUT("/items/:item_id", r.cartController.UpdateQuantity)
		}
	}

	wishlist := router.Group("/wishlist")
	{
		handle(wishlist, "POST", "/", r.wishlistController.CreateWishlist)
		wishlist.GET("/:user_id", r.wishlistController.GetWishlist)
		wishlist.POST("/:user_id/add_book", r.wishlistController.AddBook)
		wishlist.DELETE("/:user_id", r.wishlistController.DeleteWishlist)
	}

	books := router.Group("/books")
	{
		handle(books, "POST", "/", r.bookController.CreateBook)
		books.GET("/:book_id", r.bookController.GetBook)
		books.GET("/genre/:genre", r.bookController.GetBooksByGenre)
		books.GET("/top_sellers", r.bookController.GetTopSellers)
		books.GET("/rating/:rating", r.bookController.GetBooksByRating)
		books.PATCH("/discount/:publisher", r.bookController.ApplyDiscount)
	}

	authors := router.Group("/authors")
	{
		handle(authors, "POST", "/", r.authorController.CreateAuthor)
		authors.GET("/:author_id/books", r.authorController.GetAuthorBooks)
	}

	reviews := router.Group("/reviews")
	{
		handle(reviews, "POST", "/", r.reviewController.CreateReview)
		reviews.GET("/:book_id", r.reviewController.GetReviews)
		reviews.PUT("/:review_id", r.reviewController.UpdateReview)
		reviews.DELETE("/:review_id", r.reviewController.DeleteReview)
	}

	return router
}

// handle registers path (which ends in "/") with and without the trailing slash.
func handle(group *gin.RouterGroup, method, path string, handler gin.HandlerFunc) {
	group.Handle(method, path, handler)
	group.Handle(method, path[:len(path)-1], handler)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
