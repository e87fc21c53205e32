package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/pagination"
)

// Service exposes order history reads for signed-in shoppers.
type Service interface {
	History(ctx context.Context, userID uuid.UUID, pageNumber int) (*HistoryView, error)
	Detail(ctx context.Context, orderID, userID uuid.UUID) (*View, error)
}

type service struct {
	repo     Repository
	pageSize int
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, pageSize int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &service{repo: repo, pageSize: pageSize}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, pageNumber int) (*HistoryView, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting orders")
	}

	page := pagination.Resolve(pagination.Params{Page: pageNumber, PageSize: s.pageSize}, total)

	orders, err := s.repo.ListByUser(ctx, userID, page.Offset(), page.Size)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	summaries := make([]SummaryView, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, toSummaryView(order))
	}
	return &HistoryView{Orders: summaries, Page: page}, nil
}

// Detail scopes the lookup to the requesting user so one shopper can never
// read another's order.
func (s *service) Detail(ctx context.Context, orderID, userID uuid.UUID) (*View, error) {
	order, err := s.repo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return ToView(order), nil
}
