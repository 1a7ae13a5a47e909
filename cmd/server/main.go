package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/bookstore-backend/config"
	"github.com/ikkim/bookstore-backend/internal/app/controller"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/internal/router"
	"github.com/ikkim/bookstore-backend/pkg/lock"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	redispkg "github.com/ikkim/bookstore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting Bookstore Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
		"db_driver":   cfg.Database.Driver,
	})

	// Initialize database
	database, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Cart lock: Redis when shared across instances, in-process otherwise
	var cartLocker lock.Locker = lock.NewKeyedMutex()
	if cfg.Redis.Enabled {
		client, err := redispkg.Connect(context.Background(), &cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer client.Close()
		cartLocker = redispkg.NewLocker(client, cfg.Cart.LockTTL, cfg.Cart.LockRetryInterval)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	cartRepo := repository.NewCartRepository(database)
	wishlistRepo := repository.NewWishlistRepository(database)
	bookRepo := repository.NewBookRepository(database)
	authorRepo := repository.NewAuthorRepository(database)
	reviewRepo := repository.NewReviewRepository(database)

	// Initialize services
	userService := service.NewUserService(userRepo)
	cartService := service.NewCartService(cartRepo, userRepo, cartLocker)
	wishlistService := service.NewWishlistService(wishlistRepo)
	bookService := service.NewBookService(bookRepo)
	authorService := service.NewAuthorService(authorRepo, bookRepo)
	reviewService := service.NewReviewService(reviewRepo)

	// Setup router
	r := router.NewRouter(
		controller.NewCartController(cartService),
		controller.NewUserController(userService),
		controller.NewWishlistController(wishlistService),
		controller.NewBookController(bookService),
		controller.NewAuthorController(authorService),
		controller.NewReviewController(reviewService),
		controller.NewHealthController(database),
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
