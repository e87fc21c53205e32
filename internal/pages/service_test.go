package pages

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

type stubRepo struct {
	Repository

	pages      []models.Page
	submission *models.ContactSubmission
}

func (s *stubRepo) ListActive(_ context.Context) ([]models.Page, error) {
	return s.pages, nil
}

func (s *stubRepo) FindActiveBySlug(_ context.Context, slug string) (*models.Page, error) {
	for _, p := range s.pages {
		if p.Slug == slug {
			page := p
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) CreateSubmission(_ context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	submission.ID = uuid.New()
	submission.SubmittedAt = time.Now().UTC()
	s.submission = submission
	return submission, nil
}

func TestServiceGet(t *testing.T) {
	repo := &stubRepo{pages: []models.Page{{Title: "About Us", Slug: "about-us", Content: "Hello"}}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	view, err := svc.Get(context.Background(), "about-us")
	require.NoError(t, err)
	assert.Equal(t, "About Us", view.Title)
	assert.Equal(t, "Hello", view.Content)

	_, err = svc.Get(context.Background(), "missing")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestServiceListStripsContent(t *testing.T) {
	repo := &stubRepo{pages: []models.Page{{Title: "About Us", Slug: "about-us", Content: "long body"}}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "about-us", list[0].Slug)
}

func TestServiceSubmitContactNormalizes(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	receipt, err := svc.SubmitContact(context.Background(), ContactInput{
		Name:    "  Mei ",
		Email:   " MEI@Example.com ",
		Subject: "Sizing",
		Message: " Does it fit? ",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, receipt.ID)

	require.NotNil(t, repo.submission)
	assert.Equal(t, "Mei", repo.submission.Name)
	assert.Equal(t, "mei@example.com", repo.submission.Email)
	assert.Equal(t, "Does it fit?", repo.submission.Message)
}
