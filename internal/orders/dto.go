package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
	"github.com/hkfashion/storefront-backend/pkg/enums"
	"github.com/hkfashion/storefront-backend/pkg/pagination"
)

// ItemView is one order line as exposed to clients.
type ItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	IsPreorder  bool            `json:"is_preorder"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// View is a full order as exposed to clients.
type View struct {
	ID         uuid.UUID         `json:"id"`
	Status     enums.OrderStatus `json:"status"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Email      string            `json:"email"`
	Address    string            `json:"address"`
	PostalCode string            `json:"postal_code"`
	City       string            `json:"city"`
	Items      []ItemView        `json:"items"`
	TotalCost  decimal.Decimal   `json:"total_cost"`
	CreatedAt  time.Time         `json:"created_at"`
}

// SummaryView is the order history row.
type SummaryView struct {
	ID        uuid.UUID         `json:"id"`
	Status    enums.OrderStatus `json:"status"`
	ItemCount int               `json:"item_count"`
	TotalCost decimal.Decimal   `json:"total_cost"`
	CreatedAt time.Time         `json:"created_at"`
}

// HistoryView is one page of a shopper's order history.
type HistoryView struct {
	Orders []SummaryView   `json:"orders"`
	Page   pagination.Page `json:"page"`
}

func toItemView(item models.OrderItem) ItemView {
	view := ItemView{
		ProductID:  item.ProductID,
		Price:      item.Price,
		Quantity:   item.Quantity,
		IsPreorder: item.IsPreorder,
		TotalPrice: item.Cost(),
	}
	if item.Product != nil {
		view.ProductName = item.Product.Name
	}
	return view
}

// ToView maps a persisted order onto its client payload.
func ToView(order *models.Order) *View {
	items := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toItemView(item))
	}
	return &View{
		ID:         order.ID,
		Status:     order.Status,
		FirstName:  order.FirstName,
		LastName:   order.LastName,
		Email:      order.Email,
		Address:    order.Address,
		PostalCode: order.PostalCode,
		City:       order.City,
		Items:      items,
		TotalCost:  order.TotalCost(),
		CreatedAt:  order.CreatedAt,
	}
}

func toSummaryView(order models.Order) SummaryView {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return SummaryView{
		ID:        order.ID,
		Status:    order.Status,
		ItemCount: count,
		TotalCost: order.TotalCost(),
		CreatedAt: order.CreatedAt,
	}
}
