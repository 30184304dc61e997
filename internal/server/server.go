package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"catalog/internal/config"
	"catalog/internal/handler"
	"catalog/internal/middleware"
	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

// NewServer wires repositories, services and handlers into a gin engine.
// Repositories come in as interfaces so tests can swap in fakes.
func NewServer(cfg *config.Config, logger *zap.Logger, authRepo repository.AuthRepository, productRepo repository.ProductRepository) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	s := &Server{
		router: router,
		logger: logger,
	}

	s.setupRoutes(cfg, authRepo, productRepo)

	return s
}

func (s *Server) setupRoutes(cfg *config.Config, authRepo repository.AuthRepository, productRepo repository.ProductRepository) {
	jwtSecret := []byte(cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	authService := service.NewAuthService(authRepo, jwtSecret, tokenTTL, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	productHandler := handler.NewProductHandler(productRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	s.router.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/")
	authRequired.Use(middleware.AuthMiddleware(jwtSecret, s.logger))
	{
		authRequired.POST("/products", productHandler.CreateProduct)
		authRequired.GET("/products", productHandler.ListProducts)
		authRequired.GET("/products/:id", productHandler.GetProduct)
		authRequired.PUT("/products/:id", productHandler.UpdateProduct)
		authRequired.DELETE("/products/:id", productHandler.DeleteProduct)
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
