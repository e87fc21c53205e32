package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

// ProductFinder resolves catalog products for cart operations.
type ProductFinder interface {
	FindAvailableByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service exposes the session cart operations.
type Service interface {
	Add(ctx context.Context, sessionID string, input AddInput) error
	Remove(ctx context.Context, sessionID string, productID uuid.UUID) error
	Clear(ctx context.Context, sessionID string) error
	Detail(ctx context.Context, sessionID string) (*View, error)
	Badge(ctx context.Context, sessionID string) (*BadgeView, error)
	Current(ctx context.Context, sessionID string) (Cart, error)
}

type service struct {
	store    Store
	products ProductFinder
}

// NewService builds a cart service with the required dependencies.
func NewService(store Store, products ProductFinder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{store: store, products: products}, nil
}

func (s *service) Add(ctx context.Context, sessionID string, input AddInput) error {
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindAvailableByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up product")
	}

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	c.Add(product.ID, product.Price, input.Quantity, input.Override)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

func (s *service) Remove(ctx context.Context, sessionID string, productID uuid.UUID) error {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	c.Remove(productID)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

// Detail joins cart lines with live catalog rows. Lines whose product has
// since been removed or hidden are pruned and the pruned cart is written back.
func (s *service) Detail(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	view := &View{Items: []LineView{}}
	if c.IsEmpty() {
		view.TotalPrice = c.TotalPrice()
		return view, nil
	}

	products, err := s.products.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	pruned := false
	for _, id := range c.ProductIDs() {
		product, ok := byID[id]
		if !ok {
			c.Remove(id)
			pruned = true
			continue
		}
		line := c[id]
		view.Items = append(view.Items, LineView{
			ProductID:  product.ID,
			Name:       product.Name,
			Slug:       product.Slug,
			Image:      product.Image,
			IsPreorder: product.IsPreorder,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			LivePrice:  product.Price,
			PriceMoved: !product.Price.Equal(line.UnitPrice),
		})
	}

	if pruned {
		if err := s.store.Save(ctx, sessionID, c); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving pruned cart")
		}
	}

	view.ItemCount = c.Len()
	view.TotalPrice = c.TotalPrice()
	return view, nil
}

func (s *service) Badge(ctx context.Context, sessionID string) (*BadgeView, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return &BadgeView{ItemCount: c.Len(), TotalPrice: c.TotalPrice()}, nil
}

// Current exposes the raw cart for checkout.
func (s *service) Current(ctx context.Context, sessionID string) (Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return c, nil
}
