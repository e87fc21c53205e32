package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/config"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/security"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func passwordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := setupUsersTestDB(t)
	svc, err := NewService(NewRepository(conn), &testTxRunner{db: conn}, passwordConfig())
	require.NoError(t, err)
	return svc, conn
}

func TestServiceRegisterCreatesUserAndProfile(t *testing.T) {
	svc, conn := newTestService(t)

	view, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  Mei@Example.com ",
		Password:  "correct-horse-battery",
		FirstName: "Mei",
		LastName:  "Wong",
	})
	require.NoError(t, err)

	// Email is stored normalized.
	assert.Equal(t, "mei@example.com", view.Email)
	assert.Equal(t, "Mei", view.FirstName)

	user, err := NewRepository(conn).FindByEmail(context.Background(), "mei@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.Profile)

	// The stored hash verifies against the original password.
	ok, err := security.VerifyPassword("correct-horse-battery", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	input := RegisterInput{
		Email:     "mei@example.com",
		Password:  "correct-horse-battery",
		FirstName: "Mei",
		LastName:  "Wong",
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeConflict, coded.Code())
}

func TestServiceUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.Register(context.Background(), RegisterInput{
		Email:     "mei@example.com",
		Password:  "correct-horse-battery",
		FirstName: "Mei",
		LastName:  "Wong",
	})
	require.NoError(t, err)

	city := "Hong Kong"
	phone := "+852 5555 0100"
	updated, err := svc.UpdateProfile(context.Background(), view.ID, UpdateProfileInput{
		City:        &city,
		PhoneNumber: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hong Kong", updated.City)
	assert.Equal(t, "+852 5555 0100", updated.PhoneNumber)
	// Untouched fields stay put.
	assert.Equal(t, "Mei", updated.FirstName)
}

func TestServiceCheckoutDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.Register(context.Background(), RegisterInput{
		Email:     "mei@example.com",
		Password:  "correct-horse-battery",
		FirstName: "Mei",
		LastName:  "Wong",
	})
	require.NoError(t, err)

	address := "12 Nathan Road"
	postal := "999077"
	city := "Hong Kong"
	_, err = svc.UpdateProfile(context.Background(), view.ID, UpdateProfileInput{
		Address:    &address,
		PostalCode: &postal,
		City:       &city,
	})
	require.NoError(t, err)

	defaults, err := svc.CheckoutDefaults(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mei", defaults.FirstName)
	assert.Equal(t, "mei@example.com", defaults.Email)
	assert.Equal(t, "12 Nathan Road", defaults.Address)
	assert.Equal(t, "999077", defaults.PostalCode)
	assert.Equal(t, "Hong Kong", defaults.City)
}

func TestServiceGetProfileMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
