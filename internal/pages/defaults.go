package pages

import (
	"context"

	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

var defaultPages = []models.Page{
	{
		Title:     "About Us",
		Slug:      "about-us",
		Content:   "Hong Kong fashion, shipped worldwide.",
		MetaTitle: "About Us",
		IsActive:  true,
	},
	{
		Title:     "Shipping & Returns",
		Slug:      "shipping-returns",
		Content:   "Orders ship within two business days. Returns accepted within 30 days.",
		MetaTitle: "Shipping & Returns",
		IsActive:  true,
	},
	{
		Title:     "Privacy Policy",
		Slug:      "privacy-policy",
		Content:   "We only store what we need to fulfil your order.",
		MetaTitle: "Privacy Policy",
		IsActive:  true,
	},
	{
		Title:     "Terms of Service",
		Slug:      "terms-of-service",
		Content:   "By placing an order you agree to these terms.",
		MetaTitle: "Terms of Service",
		IsActive:  true,
	},
}

// EnsureDefaults seeds the stock pages on an empty table. It runs once at
// startup and is a no-op when any page already exists, so operator edits are
// never overwritten.
func EnsureDefaults(ctx context.Context, repo Repository, tx txRunner) error {
	total, err := repo.CountPages(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting pages")
	}
	if total > 0 {
		return nil
	}

	return tx.WithTx(ctx, func(txDB *gorm.DB) error {
		txRepo := repo.WithTx(txDB)
		for i := range defaultPages {
			page := defaultPages[i]
			if _, err := txRepo.CreatePage(ctx, &page); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seeding default pages")
			}
		}
		return nil
	})
}
