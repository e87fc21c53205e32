package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

// Service exposes static page reads and the contact form.
type Service interface {
	List(ctx context.Context) ([]SummaryView, error)
	Get(ctx context.Context, slug string) (*View, error)
	SubmitContact(ctx context.Context, input ContactInput) (*ContactReceipt, error)
}

type service struct {
	repo Repository
}

// NewService builds a pages service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pages repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]SummaryView, error) {
	pages, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing pages")
	}
	views := make([]SummaryView, 0, len(pages))
	for _, page := range pages {
		views = append(views, toSummaryView(page))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, slug string) (*View, error) {
	page, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading page")
	}
	return toView(page), nil
}

func (s *service) SubmitContact(ctx context.Context, input ContactInput) (*ContactReceipt, error) {
	submission := &models.ContactSubmission{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if _, err := s.repo.CreateSubmission(ctx, submission); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing submission")
	}
	return &ContactReceipt{ID: submission.ID, SubmittedAt: submission.SubmittedAt}, nil
}
