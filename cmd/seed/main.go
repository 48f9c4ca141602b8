// Package main provides a CLI tool for seeding the database with demo
// catalog data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/domain/catalogs/product"
	"stockmark/internal/infrastructure/storage/postgres"
	"stockmark/internal/infrastructure/storage/postgres/catalog_repo"
	"stockmark/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	companyService := company.NewService(catalog_repo.NewCompanyRepo(txm))
	productService := product.NewService(catalog_repo.NewProductRepo(txm))

	if err := seedCompanies(ctx, companyService, log); err != nil {
		log.Fatalw("failed to seed companies", "error", err)
	}
	if err := seedProducts(ctx, pool, productService, log); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedCompanies(ctx context.Context, svc *company.Service, log *logger.Logger) error {
	inputs := []company.ResolveInput{
		{Name: "Severnaya Logistika LLC", Phone: "+79990000001", INN: "7701234567"},
		{Name: "TradeHouse Vostok", Phone: "+79990000002", INN: "7812345678"},
		{Name: "Retail Point 24", Phone: "+79990000003"},
	}

	for _, in := range inputs {
		// Resolve is idempotent; rerunning the seeder does not create
		// duplicates.
		c, err := svc.Resolve(ctx, in)
		if err != nil {
			return err
		}
		log.Infow("company seeded", "id", c.ID, "name", c.Name)
	}
	return nil
}

func seedProducts(ctx context.Context, pool *postgres.Pool, svc *product.Service, log *logger.Logger) error {
	demo := []*product.Product{
		product.NewProduct("Thermal Sensor TS-100", 1250000, 0.8, 50),
		product.NewProduct("Controller Unit CU-7", 4890050, 1.2, 20),
		product.NewProduct("Mounting Kit MK-3", 99900, 0.3, 200),
	}

	for _, p := range demo {
		var exists bool
		err := pool.Pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)", p.Name,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			log.Infow("product already seeded", "name", p.Name)
			continue
		}

		if err := svc.Create(ctx, p); err != nil {
			return err
		}
		log.Infow("product seeded", "id", p.ID, "name", p.Name)
	}
	return nil
}
