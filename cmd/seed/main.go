// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/employee"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/rawmaterial"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/domain/recipe"
	"espetaria/internal/infrastructure/storage/postgres"
	"espetaria/internal/infrastructure/storage/postgres/catalog_repo"
	"espetaria/internal/infrastructure/storage/postgres/migrations"
	"espetaria/internal/infrastructure/storage/postgres/recipe_repo"
	"espetaria/pkg/logger"
	"espetaria/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	if err := migrations.Up(ctx, dbURL); err != nil {
		log.Fatalw("failed to apply migrations", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedDemoData(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)
	gen := numerator.New(pool.Pool)

	productService := product.NewService(catalog_repo.NewProductRepo(txManager), txManager, gen)
	rawMaterialService := rawmaterial.NewService(catalog_repo.NewRawMaterialRepo(txManager), txManager, gen)
	supplyService := supply.NewService(catalog_repo.NewSupplyRepo(txManager), txManager, gen)
	employeeService := employee.NewService(catalog_repo.NewEmployeeRepo(txManager), txManager, gen)
	recipeService := recipe.NewService(recipe_repo.NewRecipeRepo(txManager), productService, txManager)

	// Finished product
	espeto := product.NewProduct("PROD-001", "Espeto de Carne")
	espeto.SalePrice = types.MustQuantity("8.50")
	if err := productService.Create(ctx, espeto); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	// Raw material: 50 kg on hand, consumed at 100 g per unit
	carne := rawmaterial.NewRawMaterial("RM-001", "Carne")
	carne.CurrentStock = types.MustQuantity("50")
	carne.MinimumStock = types.MustQuantity("10")
	if err := rawMaterialService.Create(ctx, carne); err != nil {
		return fmt.Errorf("create raw material: %w", err)
	}

	// Simple supply
	palito := supply.NewSupply("SP-001", "Palito", "un")
	palito.CurrentStock = types.MustQuantity("1000")
	palito.MinimumStock = types.MustQuantity("200")
	if err := supplyService.Create(ctx, palito); err != nil {
		return fmt.Errorf("create supply: %w", err)
	}

	// Compound supply and its ingredient
	papelao := supply.NewSupply("SP-002", "Papelão", "un")
	papelao.CurrentStock = types.MustQuantity("500")
	if err := supplyService.Create(ctx, papelao); err != nil {
		return fmt.Errorf("create supply: %w", err)
	}

	caixa := supply.NewSupply("SP-003", "Caixa Montada", "un")
	caixa.CurrentStock = types.MustQuantity("200")
	if err := supplyService.Create(ctx, caixa); err != nil {
		return fmt.Errorf("create supply: %w", err)
	}

	// One batch of 2 Papelão yields 10 Caixa Montada
	caixaRecipe := supply.NewSupplyRecipe(caixa.ID, types.MustQuantity("10"))
	caixaRecipe.AddItem(papelao.ID, types.MustQuantity("2"), "un")
	if err := supplyService.SaveRecipe(ctx, caixaRecipe); err != nil {
		return fmt.Errorf("create supply recipe: %w", err)
	}

	// Employee
	maria := employee.NewEmployee("EMP-001", "Maria")
	maria.Role = "production"
	if err := employeeService.Create(ctx, maria); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	// Recipe: 100 g of Carne and 1 Palito per espeto
	rcp := recipe.NewRecipe(espeto.ID)
	rcp.CreatedBy = "seed"
	rcp.UpdatedBy = "seed"
	rcp.AddLine(carne.ID, types.MustQuantity("100"))
	rcp.AddSupplyLine(palito.ID, types.MustQuantity("1"))
	if err := recipeService.Create(ctx, rcp); err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}

	log.Infow("demo data seeded",
		"product", espeto.Name,
		"raw_materials", 1,
		"supplies", 3,
		"employees", 1,
	)
	return nil
}
