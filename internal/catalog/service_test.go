package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/db/models"
	"github.com/hkfashion/storefront-backend/pkg/enums"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

type stubRepo struct {
	Repository

	products   []models.Product
	total      int64
	categories []models.Category
	detail     *models.Product

	lastList  ListParams
	listCalls int
}

func (s *stubRepo) ListProducts(_ context.Context, params ListParams) ([]models.Product, error) {
	s.lastList = params
	s.listCalls++
	return s.products, nil
}

func (s *stubRepo) CountProducts(_ context.Context, _ ListParams) (int64, error) {
	return s.total, nil
}

func (s *stubRepo) Home(_ context.Context, limit int) ([]models.Product, error) {
	if limit < len(s.products) {
		return s.products[:limit], nil
	}
	return s.products, nil
}

func (s *stubRepo) FindDetail(_ context.Context, id uuid.UUID, slug string) (*models.Product, error) {
	if s.detail != nil && s.detail.ID == id && s.detail.Slug == slug {
		return s.detail, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Categories(_ context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubRepo) FindCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func catalogConfig() config.CatalogConfig {
	return config.CatalogConfig{PageSize: 12, HomePageSize: 8}
}

func sampleProduct() models.Product {
	return models.Product{
		ID:    uuid.New(),
		Name:  "Silk Scarf",
		Slug:  "silk-scarf",
		Price: decimal.RequireFromString("19.99"),
		Stock: 3,
		Category: &models.Category{
			ID:   uuid.New(),
			Name: "Scarves",
			Slug: "scarves",
		},
	}
}

func TestServiceListClampsOutOfRangePage(t *testing.T) {
	repo := &stubRepo{products: []models.Product{sampleProduct()}, total: 30}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	view, err := svc.List(context.Background(), ListInput{Page: 99, Sort: "newest"})
	require.NoError(t, err)

	// 30 items at 12 per page is 3 pages; page 99 lands on page 3.
	assert.Equal(t, 3, view.Page.Number)
	assert.Equal(t, 24, repo.lastList.Offset)
	assert.Equal(t, 12, repo.lastList.Limit)
	assert.Equal(t, enums.ProductSortNewest, view.Sort)
}

func TestServiceListUnknownSortFallsBackToName(t *testing.T) {
	repo := &stubRepo{total: 1}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	view, err := svc.List(context.Background(), ListInput{Sort: "sideways"})
	require.NoError(t, err)
	assert.Equal(t, enums.ProductSortName, view.Sort)
}

func TestServiceListUnknownCategory(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), ListInput{CategorySlug: "missing"})
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestServiceListIncludesCategoryContext(t *testing.T) {
	repo := &stubRepo{
		total:      1,
		categories: []models.Category{{ID: uuid.New(), Name: "Scarves", Slug: "scarves"}},
	}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	view, err := svc.List(context.Background(), ListInput{CategorySlug: "scarves"})
	require.NoError(t, err)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Scarves", view.Category.Name)
	assert.Equal(t, "scarves", repo.lastList.CategorySlug)
}

func TestServiceHomeUsesConfiguredLimit(t *testing.T) {
	products := make([]models.Product, 10)
	for i := range products {
		products[i] = sampleProduct()
	}
	repo := &stubRepo{products: products}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	home, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, home, 8)
}

func TestServiceDetail(t *testing.T) {
	product := sampleProduct()
	repo := &stubRepo{detail: &product}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	view, err := svc.Detail(context.Background(), product.ID, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, product.Name, view.Name)
	assert.True(t, view.InStock)
	assert.Equal(t, "Scarves", view.Category.Name)

	_, err = svc.Detail(context.Background(), product.ID, "wrong-slug")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestServiceCategories(t *testing.T) {
	repo := &stubRepo{categories: []models.Category{
		{ID: uuid.New(), Name: "Bags", Slug: "bags"},
		{ID: uuid.New(), Name: "Scarves", Slug: "scarves"},
	}}
	svc, err := NewService(repo, catalogConfig())
	require.NoError(t, err)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "bags", categories[0].Slug)
}
