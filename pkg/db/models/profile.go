package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the optional shipping details attached to a user. It is
// created explicitly during registration, never by a persistence hook.
type Profile struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	PhoneNumber string    `gorm:"column:phone_number;not null;default:''"`
	Address     string    `gorm:"column:address;not null;default:''"`
	City        string    `gorm:"column:city;not null;default:''"`
	PostalCode  string    `gorm:"column:postal_code;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
