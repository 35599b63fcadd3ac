package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sweetshop/internal/config"
	"sweetshop/internal/database"
	"sweetshop/internal/handlers"
	"sweetshop/internal/middleware"
	"sweetshop/internal/repository"
	"sweetshop/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sweetRepo := repository.NewSweetRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	tokenService := services.NewTokenService(cfg.Auth)
	authService := services.NewAuthService(userRepo, tokenService)
	sweetService := services.NewSweetService(sweetRepo)
	auditService := services.NewAuditService(auditRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, auditService)
	sweetHandler := handlers.NewSweetHandler(sweetService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.App.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.App.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type"}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.Auth(tokenService))
	{
		protected.POST("/sweets", sweetHandler.Create)
		protected.GET("/sweets", sweetHandler.List)
		protected.GET("/sweets/search", sweetHandler.Search)
		protected.PUT("/sweets/:id", sweetHandler.Update)
		protected.DELETE("/sweets/:id", sweetHandler.Delete)
		protected.POST("/sweets/:id/purchase", sweetHandler.Purchase)
		protected.POST("/sweets/:id/restock", sweetHandler.Restock)

		protected.GET("/audit", auditHandler.List)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Printf("Starting server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
}
