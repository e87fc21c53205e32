package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page is a static content page rendered by the storefront.
type Page struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string    `gorm:"column:title;not null"`
	Slug            string    `gorm:"column:slug;not null;uniqueIndex"`
	Content         string    `gorm:"column:content;not null;default:''"`
	MetaTitle       string    `gorm:"column:meta_title;not null;default:''"`
	MetaDescription string    `gorm:"column:meta_description;not null;default:''"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
