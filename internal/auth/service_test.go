package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/internal/users"
	pkgauth "github.com/hkfashion/storefront-backend/pkg/auth"
	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/security"
)

type stubUserRepo struct {
	users.Repository

	user       *models.User
	lastLogins map[uuid.UUID]time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if s.lastLogins == nil {
		s.lastLogins = map[uuid.UUID]time.Time{}
	}
	s.lastLogins[id] = at
	return nil
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "hkfashion",
		ExpirationMinutes: 60,
	}
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)

	return &models.User{
		ID:           uuid.New(),
		Email:        "mei@example.com",
		PasswordHash: hash,
		FirstName:    "Mei",
		LastName:     "Wong",
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := activeUser(t, "correct-horse-battery")
	repo := &stubUserRepo{user: user}
	svc, err := NewService(repo, jwtConfig())
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), LoginInput{
		Email:    " Mei@Example.com ",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	// Token parses back to the same identity.
	claims, err := pkgauth.ParseAccessToken(jwtConfig(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Login is recorded.
	_, touched := repo.lastLogins[user.ID]
	assert.True(t, touched)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubUserRepo{user: activeUser(t, "correct-horse-battery")}
	svc, err := NewService(repo, jwtConfig())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "mei@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, err := NewService(&stubUserRepo{}, jwtConfig())
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "anything",
	})
	require.Error(t, unknownErr)

	repo := &stubUserRepo{user: activeUser(t, "correct-horse-battery")}
	svc2, err := NewService(repo, jwtConfig())
	require.NoError(t, err)
	_, wrongErr := svc2.Login(context.Background(), LoginInput{
		Email:    "mei@example.com",
		Password: "wrong",
	})
	require.Error(t, wrongErr)

	// Identical message for unknown account and wrong password.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	user := activeUser(t, "correct-horse-battery")
	user.IsActive = false
	svc, err := NewService(&stubUserRepo{user: user}, jwtConfig())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "mei@example.com",
		Password: "correct-horse-battery",
	})
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())
}
