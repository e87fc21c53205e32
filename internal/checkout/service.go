package checkout

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/internal/cart"
	"github.com/hkfashion/storefront-backend/internal/orders"
	"github.com/hkfashion/storefront-backend/internal/users"
	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/logger"
)

// ErrEmptyCart signals that checkout was attempted with nothing to buy.
// Controllers translate it into a redirect back to the product listing.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccessor interface {
	Current(ctx context.Context, sessionID string) (cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type defaultsLoader interface {
	CheckoutDefaults(ctx context.Context, userID uuid.UUID) (*users.CheckoutDefaults, error)
}

// Service executes checkout orchestration.
type Service interface {
	Prepare(ctx context.Context, sessionID string, userID *uuid.UUID) (*PrefillView, error)
	Submit(ctx context.Context, sessionID string, userID *uuid.UUID, input SubmitInput) (*ReceiptView, error)
}

type service struct {
	tx         txRunner
	carts      cartAccessor
	ordersRepo orders.Repository
	products   productLoader
	defaults   defaultsLoader
	logg       *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	carts cartAccessor,
	ordersRepo orders.Repository,
	products productLoader,
	defaults defaultsLoader,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if defaults == nil {
		return nil, fmt.Errorf("defaults loader required")
	}
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "checkout", Output: io.Discard})
	}
	return &service{
		tx:         tx,
		carts:      carts,
		ordersRepo: ordersRepo,
		products:   products,
		defaults:   defaults,
		logg:       logg,
	}, nil
}

// Prepare returns form prefill values for the checkout form. An empty cart
// means there is nothing to check out, so the shopper is sent back to the
// listing instead of being shown the form. Guests get an empty form.
func (s *service) Prepare(ctx context.Context, sessionID string, userID *uuid.UUID) (*PrefillView, error) {
	current, err := s.carts.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if userID == nil {
		return &PrefillView{}, nil
	}
	defaults, err := s.defaults.CheckoutDefaults(ctx, *userID)
	if err != nil {
		return nil, err
	}
	return &PrefillView{
		FirstName:  defaults.FirstName,
		LastName:   defaults.LastName,
		Email:      defaults.Email,
		Address:    defaults.Address,
		PostalCode: defaults.PostalCode,
		City:       defaults.City,
	}, nil
}

// Submit turns the session cart into a persisted order. The order and all of
// its items are written in one transaction; item prices come from the cart
// snapshot while the preorder flag reflects the product at purchase time.
func (s *service) Submit(ctx context.Context, sessionID string, userID *uuid.UUID, input SubmitInput) (*ReceiptView, error) {
	current, err := s.carts.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, ErrEmptyCart
	}

	products, err := s.products.FindByIDs(ctx, current.ProductIDs())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var orderID uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.ordersRepo.WithTx(tx)

		order := &models.Order{
			UserID:     userID,
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Email:      input.Email,
			Address:    input.Address,
			PostalCode: input.PostalCode,
			City:       input.City,
		}
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		items := make([]models.OrderItem, 0, len(current))
		for _, productID := range current.ProductIDs() {
			product, ok := byID[productID]
			if !ok {
				// Product vanished between cart and checkout; skip the line.
				continue
			}
			line := current[productID]
			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				ProductID:  product.ID,
				Price:      line.UnitPrice,
				Quantity:   line.Quantity,
				IsPreorder: product.IsPreorder,
			})
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Clearing is best effort; the session TTL reaps stale carts.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "failed to clear cart after checkout", err)
	}

	placed, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading placed order")
	}
	return &ReceiptView{Order: orders.ToView(placed)}, nil
}
