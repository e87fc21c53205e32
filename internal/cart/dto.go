package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddInput carries one add-to-cart request.
type AddInput struct {
	ProductID uuid.UUID
	Quantity  int
	Override  bool
}

// LineView is one rendered cart line joined with live catalog data.
type LineView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Image       *string         `json:"image,omitempty"`
	IsPreorder  bool            `json:"is_preorder"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	LivePrice   decimal.Decimal `json:"live_price"`
	PriceMoved  bool            `json:"price_moved"`
}

// View is the full cart page payload.
type View struct {
	Items      []LineView      `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// BadgeView is the lightweight header badge payload.
type BadgeView struct {
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
