package pages

import (
	"context"

	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for static pages and the
// contact inbox.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActive(ctx context.Context) ([]models.Page, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Page, error)
	CreatePage(ctx context.Context, page *models.Page) (*models.Page, error)
	CountPages(ctx context.Context) (int64, error)
	CreateSubmission(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pages repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListActive(ctx context.Context) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *repository) CreatePage(ctx context.Context, page *models.Page) (*models.Page, error) {
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *repository) CountPages(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Page{}).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}
