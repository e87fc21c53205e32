package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the canonical catalog listing. Price and stock are owned by admin
// tooling; order placement never mutates stock.
type Product struct {
	ID                  uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID          uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Category            *Category       `gorm:"foreignKey:CategoryID"`
	Name                string          `gorm:"column:name;not null"`
	Slug                string          `gorm:"column:slug;not null;index"`
	Description         string          `gorm:"column:description;not null;default:''"`
	Price               decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock               int             `gorm:"column:stock;not null;default:0"`
	Available           bool            `gorm:"column:available;not null;default:true"`
	IsPreorder          bool            `gorm:"column:is_preorder;not null;default:false"`
	PreorderReleaseDate *time.Time      `gorm:"column:preorder_release_date"`
	Image               *string         `gorm:"column:image"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
