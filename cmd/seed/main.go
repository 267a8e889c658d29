package main

import (
	"context"
	"log"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// The cache is only touched to drop a stale project list after seeding.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	projectService := service.NewProjectService(repository.NewProjectRepository(gormDB), cacheClient, 0)
	inserted, err := projectService.SeedIfEmpty(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed projects: %v", err)
	}

	if inserted == 0 {
		log.Println("Projects collection already populated, nothing to do")
		return
	}
	log.Printf("Seed completed successfully: %d starter projects inserted", inserted)
}
