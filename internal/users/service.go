package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/db"
	"github.com/hkfashion/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes account registration and profile management.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*ProfileView, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileView, error)
	CheckoutDefaults(ctx context.Context, userID uuid.UUID) (*CheckoutDefaults, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService builds a users service with the required dependencies.
func NewService(repo Repository, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx, passwordCfg: passwordCfg}, nil
}

// Register creates the account and its profile row in one transaction, so a
// user without a profile can never be observed.
func (s *service) Register(ctx context.Context, input RegisterInput) (*ProfileView, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsActive:     true,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateUser(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
		}
		if _, err := repo.CreateProfile(ctx, &models.Profile{UserID: user.ID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, user.ID)
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}
	return toProfileView(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileView, error) {
	userUpdates := map[string]any{}
	if input.FirstName != nil {
		userUpdates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		userUpdates["last_name"] = strings.TrimSpace(*input.LastName)
	}

	profileUpdates := map[string]any{}
	if input.PhoneNumber != nil {
		profileUpdates["phone_number"] = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Address != nil {
		profileUpdates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		profileUpdates["city"] = strings.TrimSpace(*input.City)
	}
	if input.PostalCode != nil {
		profileUpdates["postal_code"] = strings.TrimSpace(*input.PostalCode)
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateUser(ctx, userID, userUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating account")
		}
		if err := repo.UpdateProfile(ctx, userID, profileUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *service) CheckoutDefaults(ctx context.Context, userID uuid.UUID) (*CheckoutDefaults, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}

	defaults := &CheckoutDefaults{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	if user.Profile != nil {
		defaults.Address = user.Profile.Address
		defaults.PostalCode = user.Profile.PostalCode
		defaults.City = user.Profile.City
	}
	return defaults, nil
}

func toProfileView(user *models.User) *ProfileView {
	view := &ProfileView{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		view.PhoneNumber = user.Profile.PhoneNumber
		view.Address = user.Profile.Address
		view.City = user.Profile.City
		view.PostalCode = user.Profile.PostalCode
	}
	return view
}
