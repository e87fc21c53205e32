package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	pagessvc "github.com/hkfashion/storefront-backend/internal/pages"
	userssvc "github.com/hkfashion/storefront-backend/internal/users"
	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/db"
	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/logger"
)

// Populates a development database with demo catalog data, the stock
// informational pages and one demo shopper account.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Warn(ctx, "refusing to seed a production database")
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	pagesRepo := pagessvc.NewRepository(dbClient.DB())
	if err := pagessvc.EnsureDefaults(ctx, pagesRepo, dbClient); err != nil {
		logg.Error(ctx, "failed to seed default pages", err)
		os.Exit(1)
	}

	if err := seedCatalog(ctx, dbClient); err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}

	if err := seedDemoUser(ctx, cfg, dbClient); err != nil {
		logg.Error(ctx, "failed to seed demo user", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed complete")
}

func seedCatalog(ctx context.Context, dbClient *db.Client) error {
	var count int64
	if err := dbClient.DB().WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Dresses", Slug: "dresses"},
		{Name: "Tops", Slug: "tops"},
		{Name: "Accessories", Slug: "accessories"},
	}
	for i := range categories {
		if err := dbClient.DB().WithContext(ctx).Create(&categories[i]).Error; err != nil {
			return err
		}
	}

	release := time.Now().AddDate(0, 1, 0)
	products := []models.Product{
		{
			CategoryID:  categories[0].ID,
			Name:        "Cheongsam Midi Dress",
			Slug:        "cheongsam-midi-dress",
			Description: "Silk blend midi dress with a mandarin collar.",
			Price:       decimal.RequireFromString("89.00"),
			Stock:       12,
			Available:   true,
		},
		{
			CategoryID:  categories[0].ID,
			Name:        "Linen Wrap Dress",
			Slug:        "linen-wrap-dress",
			Description: "Breathable linen wrap dress for humid summers.",
			Price:       decimal.RequireFromString("72.50"),
			Stock:       8,
			Available:   true,
		},
		{
			CategoryID:  categories[1].ID,
			Name:        "Cropped Knit Top",
			Slug:        "cropped-knit-top",
			Description: "Soft cotton knit, cropped cut.",
			Price:       decimal.RequireFromString("39.90"),
			Stock:       24,
			Available:   true,
		},
		{
			CategoryID:          categories[1].ID,
			Name:                "Limited Graphic Tee",
			Slug:                "limited-graphic-tee",
			Description:         "Next season's print, available for preorder.",
			Price:               decimal.RequireFromString("29.00"),
			Stock:               0,
			Available:           true,
			IsPreorder:          true,
			PreorderReleaseDate: &release,
		},
		{
			CategoryID:  categories[2].ID,
			Name:        "Silk Scarf",
			Slug:        "silk-scarf",
			Description: "Hand rolled edges, skyline print.",
			Price:       decimal.RequireFromString("45.00"),
			Stock:       30,
			Available:   true,
		},
	}
	for i := range products {
		if err := dbClient.DB().WithContext(ctx).Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedDemoUser(ctx context.Context, cfg *config.Config, dbClient *db.Client) error {
	usersRepo := userssvc.NewRepository(dbClient.DB())
	usersService, err := userssvc.NewService(usersRepo, dbClient, cfg.Password)
	if err != nil {
		return err
	}

	_, err = usersService.Register(ctx, userssvc.RegisterInput{
		Email:     "demo@hkfashion.example.com",
		Password:  "Demo1234!",
		FirstName: "Demo",
		LastName:  "Shopper",
	})
	if err != nil {
		// Re-running the seeder against a populated database is fine.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			return nil
		}
		return err
	}
	return nil
}
