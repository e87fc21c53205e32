package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/enums"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/pagination"
)

// Service exposes the storefront catalog reads.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListView, error)
	Home(ctx context.Context) ([]ProductView, error)
	Detail(ctx context.Context, id uuid.UUID, slug string) (*ProductView, error)
	Categories(ctx context.Context) ([]CategoryView, error)
}

type service struct {
	repo Repository
	cfg  config.CatalogConfig
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListView, error) {
	sort := enums.ParseProductSort(input.Sort)

	var categoryView *CategoryView
	if input.CategorySlug != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, input.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up category")
		}
		cv := toCategoryView(*category)
		categoryView = &cv
	}

	// Count first so out-of-range page numbers clamp onto a real page.
	total, err := s.repo.CountProducts(ctx, ListParams{
		Query:        input.Query,
		CategorySlug: input.CategorySlug,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting products")
	}

	page := pagination.Resolve(pagination.Params{Page: input.Page, PageSize: s.cfg.PageSize}, total)

	products, err := s.repo.ListProducts(ctx, ListParams{
		Query:        input.Query,
		CategorySlug: input.CategorySlug,
		Sort:         sort,
		Offset:       page.Offset(),
		Limit:        page.Size,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	return &ListView{
		Products: toProductViews(products),
		Page:     page,
		Query:    input.Query,
		Category: categoryView,
		Sort:     sort,
	}, nil
}

func (s *service) Home(ctx context.Context) ([]ProductView, error) {
	limit := s.cfg.HomePageSize
	if limit <= 0 {
		limit = 8
	}
	products, err := s.repo.Home(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading home products")
	}
	return toProductViews(products), nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID, slug string) (*ProductView, error) {
	product, err := s.repo.FindDetail(ctx, id, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	view := toProductView(*product)
	return &view, nil
}

func (s *service) Categories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, toCategoryView(c))
	}
	return views, nil
}
