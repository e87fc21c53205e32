package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	"github.com/hkfashion/storefront-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  available INTEGER NOT NULL DEFAULT 1,
  is_preorder INTEGER NOT NULL DEFAULT 0,
  preorder_release_date DATETIME,
  image TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func newProduct(t *testing.T, db *gorm.DB, category *models.Category, name, slug, price string, created time.Time, mutate ...func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       name,
		Slug:       slug,
		Price:      decimal.RequireFromString(price),
		Stock:      10,
		Available:  true,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, fn := range mutate {
		fn(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListProductsFiltersAvailability(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	dresses := newCategory(t, db, "Dresses", "dresses")
	now := time.Now().UTC()
	newProduct(t, db, dresses, "Summer Dress", "summer-dress", "49.99", now)
	newProduct(t, db, dresses, "Hidden Dress", "hidden-dress", "59.99", now, func(p *models.Product) {
		p.Available = false
	})

	list, err := repo.ListProducts(context.Background(), ListParams{Sort: enums.ProductSortName})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Summer Dress", list[0].Name)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "dresses", list[0].Category.Slug)

	total, err := repo.CountProducts(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRepositoryListProductsSearchAcrossFields(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	scarves := newCategory(t, db, "Scarves", "scarves")
	bags := newCategory(t, db, "Bags", "bags")
	now := time.Now().UTC()
	newProduct(t, db, scarves, "Silk Wrap", "silk-wrap", "19.99", now, func(p *models.Product) {
		p.Description = "Lightweight silk for summer evenings"
	})
	newProduct(t, db, bags, "Leather Tote", "leather-tote", "89.99", now)

	// Name match.
	byName, err := repo.ListProducts(context.Background(), ListParams{Query: "silk"})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	// Description match, case insensitive.
	byDescription, err := repo.ListProducts(context.Background(), ListParams{Query: "SUMMER"})
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Silk Wrap", byDescription[0].Name)

	// Category name match.
	byCategory, err := repo.ListProducts(context.Background(), ListParams{Query: "bags"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Leather Tote", byCategory[0].Name)
}

func TestRepositoryListProductsSortOrders(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	tops := newCategory(t, db, "Tops", "tops")
	now := time.Now().UTC()
	newProduct(t, db, tops, "Basic Tee", "basic-tee", "15.00", now.Add(-2*time.Hour))
	newProduct(t, db, tops, "Cashmere Sweater", "cashmere-sweater", "120.00", now.Add(-time.Hour))
	newProduct(t, db, tops, "Linen Shirt", "linen-shirt", "45.00", now)

	priceAsc, err := repo.ListProducts(context.Background(), ListParams{Sort: enums.ProductSortPriceAsc})
	require.NoError(t, err)
	require.Len(t, priceAsc, 3)
	assert.Equal(t, "Basic Tee", priceAsc[0].Name)
	assert.Equal(t, "Cashmere Sweater", priceAsc[2].Name)

	priceDesc, err := repo.ListProducts(context.Background(), ListParams{Sort: enums.ProductSortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "Cashmere Sweater", priceDesc[0].Name)

	newest, err := repo.ListProducts(context.Background(), ListParams{Sort: enums.ProductSortNewest})
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", newest[0].Name)

	byName, err := repo.ListProducts(context.Background(), ListParams{Sort: enums.ProductSortName})
	require.NoError(t, err)
	assert.Equal(t, "Basic Tee", byName[0].Name)
}

func TestRepositoryListProductsPagingWindow(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	tops := newCategory(t, db, "Tops", "tops")
	now := time.Now().UTC()
	newProduct(t, db, tops, "Product A", "product-a", "10.00", now)
	newProduct(t, db, tops, "Product B", "product-b", "11.00", now)
	newProduct(t, db, tops, "Product C", "product-c", "12.00", now)

	window, err := repo.ListProducts(context.Background(), ListParams{
		Sort:   enums.ProductSortName,
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "Product B", window[0].Name)
}

func TestRepositoryHomeReturnsNewestAvailable(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	tops := newCategory(t, db, "Tops", "tops")
	now := time.Now().UTC()
	for i := 0; i < 10; i++ {
		newProduct(t, db, tops, "Item", "item", "9.99", now.Add(time.Duration(i)*time.Minute))
	}
	newProduct(t, db, tops, "Hidden", "hidden", "9.99", now.Add(time.Hour), func(p *models.Product) {
		p.Available = false
	})

	home, err := repo.Home(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, home, 8)
	for _, p := range home {
		assert.NotEqual(t, "Hidden", p.Name)
	}
	assert.True(t, !home[0].CreatedAt.Before(home[7].CreatedAt))
}

func TestRepositoryFindDetailRequiresMatchingSlug(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	tops := newCategory(t, db, "Tops", "tops")
	product := newProduct(t, db, tops, "Linen Shirt", "linen-shirt", "45.00", time.Now().UTC())

	found, err := repo.FindDetail(context.Background(), product.ID, "linen-shirt")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	require.NotNil(t, found.Category)

	_, err = repo.FindDetail(context.Background(), product.ID, "wrong-slug")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindDetailHidesUnavailable(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	tops := newCategory(t, db, "Tops", "tops")
	product := newProduct(t, db, tops, "Retired", "retired", "45.00", time.Now().UTC(), func(p *models.Product) {
		p.Available = false
	})

	_, err := repo.FindDetail(context.Background(), product.ID, "retired")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindAvailableByID(context.Background(), product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByIDs(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	tops := newCategory(t, db, "Tops", "tops")
	now := time.Now().UTC()
	a := newProduct(t, db, tops, "A", "a", "1.00", now)
	b := newProduct(t, db, tops, "B", "b", "2.00", now)

	found, err := repo.FindByIDs(context.Background(), []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryCategories(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	newCategory(t, db, "Scarves", "scarves")
	newCategory(t, db, "Bags", "bags")

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Bags", categories[0].Name)

	bySlug, err := repo.FindCategoryBySlug(context.Background(), "scarves")
	require.NoError(t, err)
	assert.Equal(t, "Scarves", bySlug.Name)

	_, err = repo.FindCategoryBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
