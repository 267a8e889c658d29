package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"portfolio/docs"
	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
)

// @title Photography Portfolio API
// @version 1.0
// @description Portfolio projects and single-administrator session management.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Printf("Warning: redis unavailable at %s, running without cache: %v", cfg.RedisAddr, err)
	}
	cancel()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	var tokenStore auth.TokenStoreInterface
	if cfg.SessionRevocation {
		tokenStore = auth.NewTokenStore(cacheClient)
		log.Println("Session revocation enabled")
	}

	// Initialize services
	projectRepo := repository.NewProjectRepository(gormDB)
	authService := service.NewAuthService(service.AdminCredentials{
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, jwtService, tokenStore)
	projectService := service.NewProjectService(projectRepo, cacheClient, time.Duration(cfg.ProjectsCacheTTL)*time.Second)

	inserted, err := projectService.SeedIfEmpty(context.Background())
	if err != nil {
		log.Fatalf("seed projects: %v", err)
	}
	if inserted > 0 {
		log.Printf("Seeded %d starter projects", inserted)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	projectHandler := handler.NewProjectHandler(projectService)

	router.Register(e, cfg, authService, authHandler, projectHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
