package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/repository/specification"
	"asset-selector-be/internal/repository/unitofwork"
	"asset-selector-be/pkg/catalog"
	"asset-selector-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	manifest := flag.String("manifest", "assets/manifest.json", "catalog manifest (.json, .yaml)")
	prune := flag.Bool("prune", false, "deactivate rows whose url is not in the manifest")
	flag.Parse()

	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	assets, err := catalog.NewFileSource(*manifest).Load(ctx)
	if err != nil {
		log.Fatalf("Error: Failed to read manifest: %v", err)
	}

	// Build normalizes and dedups the same way the engine will.
	built, err := catalog.Build(assets, nil)
	if err != nil {
		log.Fatalf("Error: Manifest has no usable assets: %v", err)
	}

	log.Printf("Seeding %d media assets from %s...", built.Len(), *manifest)

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: Failed to begin transaction: %v", err)
	}

	repo := uow.MediaAssetRepository()
	urls := make([]string, 0, built.Len())
	for _, a := range built.All() {
		row := &entity.MediaAsset{
			URL:         a.URL,
			Sentiment:   a.Sentiment,
			Category:    a.Category,
			Description: a.Description,
			Keywords:    a.Keywords,
			IsActive:    true,
		}
		if err := repo.Upsert(ctx, row); err != nil {
			_ = uow.Rollback()
			log.Fatalf("Error upserting asset '%s': %v", a.URL, err)
		}
		urls = append(urls, a.URL)
	}

	if *prune {
		n, err := repo.Deactivate(ctx, specification.ActiveOnly{}, specification.URLNotIn{URLs: urls})
		if err != nil {
			_ = uow.Rollback()
			log.Fatalf("Error deactivating stale assets: %v", err)
		}
		log.Printf("Deactivated %d assets missing from the manifest", n)
	}

	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: Failed to commit: %v", err)
	}

	total, err := uow.MediaAssetRepository().Count(context.Background(), specification.ActiveOnly{})
	if err != nil {
		log.Printf("Warn: Failed to count media assets: %v", err)
	}
	log.Printf("Media asset seeding completed! (%d upserted, %d active)", len(urls), total)
}
