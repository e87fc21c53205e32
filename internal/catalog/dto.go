package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	"github.com/hkfashion/storefront-backend/pkg/enums"
	"github.com/hkfashion/storefront-backend/pkg/pagination"
)

// ListInput carries raw listing parameters from the HTTP layer.
type ListInput struct {
	Query        string
	CategorySlug string
	Sort         string
	Page         int
}

// CategoryView is a category as exposed to clients.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductView is a product as exposed to clients.
type ProductView struct {
	ID                  uuid.UUID       `json:"id"`
	Category            CategoryView    `json:"category"`
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	Description         string          `json:"description,omitempty"`
	Price               decimal.Decimal `json:"price"`
	InStock             bool            `json:"in_stock"`
	IsPreorder          bool            `json:"is_preorder"`
	PreorderReleaseDate *time.Time      `json:"preorder_release_date,omitempty"`
	Image               *string         `json:"image,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ListView is one page of the product listing.
type ListView struct {
	Products []ProductView     `json:"products"`
	Page     pagination.Page   `json:"page"`
	Query    string            `json:"query,omitempty"`
	Category *CategoryView     `json:"category,omitempty"`
	Sort     enums.ProductSort `json:"sort"`
}

func toCategoryView(c models.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toProductView(p models.Product) ProductView {
	view := ProductView{
		ID:                  p.ID,
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         p.Description,
		Price:               p.Price,
		InStock:             p.Stock > 0,
		IsPreorder:          p.IsPreorder,
		PreorderReleaseDate: p.PreorderReleaseDate,
		Image:               p.Image,
		CreatedAt:           p.CreatedAt,
	}
	if p.Category != nil {
		view.Category = toCategoryView(*p.Category)
	}
	return view
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}
