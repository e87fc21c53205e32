package checkout

import (
	"github.com/hkfashion/storefront-backend/internal/orders"
)

// SubmitInput carries the shipping form posted at checkout.
type SubmitInput struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,max=250"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	City       string `json:"city" validate:"required,max=100"`
}

// PrefillView pre-populates the checkout form for signed-in shoppers.
type PrefillView struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// ReceiptView is returned once the order is placed.
type ReceiptView struct {
	Order *orders.View `json:"order"`
}
