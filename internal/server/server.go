package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"shopcart/internal/assets"
	"shopcart/internal/config"
	"shopcart/internal/database"
	custommiddleware "shopcart/internal/middleware"
	"shopcart/internal/repository"
	"shopcart/internal/service"
	"shopcart/internal/transport"
	"shopcart/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service, redisClient *redis.Client) (*Server, error) {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.Redis.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"database": dbService.Health(),
		})
	})

	// Image asset store and static serving of stored assets
	store, err := assets.NewDiskStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize asset store: %w", err)
	}
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	cartProductRepo := repository.NewCartProductRepository(db)

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(db, cartRepo)
	cartProductService := service.NewCartProductService(cartProductRepo, cartRepo, productRepo)
	remover := service.NewProductRemover(db)

	// Initialize handlers
	productValidator := validation.NewProductValidator()
	productHandler := transport.NewProductHandler(productService, remover, store, productValidator, logger)
	cartHandler := transport.NewCartHandler(cartService, cartProductService, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
