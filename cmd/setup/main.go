package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/osse101/SpiritForge_Go/internal/bootstrap"
	"github.com/osse101/SpiritForge_Go/internal/config"
	"github.com/osse101/SpiritForge_Go/internal/database"
	"github.com/osse101/SpiritForge_Go/internal/database/postgres"
)

const defaultSeedPath = "configs/seed.yaml"

func main() {
	seedPath := flag.String("seed", defaultSeedPath, "seed file with demo actors")
	skipSeed := flag.Bool("skip-seed", false, "create, migrate and sync only")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &config.Config{
		DBUser:             envOr("DB_USER", "postgres"),
		DBPassword:         envOr("DB_PASSWORD", "postgres"),
		DBHost:             envOr("DB_HOST", "localhost"),
		DBPort:             envOr("DB_PORT", "5432"),
		DBName:             envOr("DB_NAME", config.DefaultDBName),
		CatalogPath:        envOr("CATALOG_PATH", config.ConfigPathCatalog),
		CatalogSchemaPath:  envOr("CATALOG_SCHEMA_PATH", config.ConfigPathCatalogSchema),
		ResourceSchemaPath: envOr("RESOURCE_SCHEMA_PATH", config.ConfigPathResourceSchema),
	}

	ctx := context.Background()

	// 1. Create the database from the maintenance db if it does not exist
	if err := ensureDatabase(ctx, cfg); err != nil {
		log.Fatalf("Failed to prepare database: %v", err)
	}

	// 2. Migrate
	pool, err := database.NewPool(cfg.GetDBConnString(), 4, config.DefaultDBMaxConnIdleTime, config.DefaultDBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Println("Migrations applied.")

	// 3. Sync the recipe catalog
	codec, err := bootstrap.LoadCodec(cfg)
	if err != nil {
		log.Fatalf("Failed to load resource vocabulary: %v", err)
	}
	repo := postgres.NewCraftingRepository(pool)
	result, err := bootstrap.SyncCatalog(ctx, cfg, codec, repo)
	if err != nil {
		log.Fatalf("Failed to sync catalog: %v", err)
	}
	fmt.Printf("Catalog synced (inserted=%d updated=%d skipped=%v).\n", result.RecipesInserted, result.RecipesUpdated, result.Skipped)

	if *skipSeed {
		return
	}

	// 4. Seed demo actors
	seed, err := loadSeed(*seedPath)
	if err != nil {
		log.Fatalf("Failed to load seed: %v", err)
	}
	if err := seed.validate(codec); err != nil {
		log.Fatalf("Invalid seed: %v", err)
	}
	actors, items, err := seed.apply(ctx, repo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	fmt.Printf("Seeded %d actors with %d items.\n", actors, items)
}

func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	maintenance := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, maintenance)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
