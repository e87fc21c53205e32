package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	"github.com/hkfashion/storefront-backend/pkg/enums"
)

// ListParams filters and orders a product listing query.
type ListParams struct {
	Query        string
	CategorySlug string
	Sort         enums.ProductSort
	Offset       int
	Limit        int
}

// Repository defines persistence operations for the catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListProducts(ctx context.Context, params ListParams) ([]models.Product, error)
	CountProducts(ctx context.Context, params ListParams) (int64, error)
	Home(ctx context.Context, limit int) ([]models.Product, error)
	FindDetail(ctx context.Context, id uuid.UUID, slug string) (*models.Product, error)
	FindAvailableByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListProducts(ctx context.Context, params ListParams) ([]models.Product, error) {
	query := r.listQuery(ctx, params).
		Preload("Category").
		Order(orderClause(params.Sort))
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) CountProducts(ctx context.Context, params ListParams) (int64, error) {
	var total int64
	if err := r.listQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) listQuery(ctx context.Context, params ListParams) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.available = ?", true)

	if params.CategorySlug != "" {
		query = query.Where("categories.slug = ?", params.CategorySlug)
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		needle := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
			needle, needle, needle,
		)
	}
	return query
}

func (r *repository) Home(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("available = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindDetail matches the canonical product URL: both the ID and the slug must
// agree, and hidden products behave as absent.
func (r *repository) FindDetail(ctx context.Context, id uuid.UUID, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND slug = ? AND available = ?", id, slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindAvailableByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND available = ?", id, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func orderClause(sort enums.ProductSort) string {
	switch sort {
	case enums.ProductSortPriceAsc:
		return "products.price ASC, products.name ASC"
	case enums.ProductSortPriceDesc:
		return "products.price DESC, products.name ASC"
	case enums.ProductSortNewest:
		return "products.created_at DESC"
	default:
		return "products.name ASC"
	}
}
