package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission stores one contact-form message for the admin inbox.
type ContactSubmission struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email;not null"`
	Subject     string    `gorm:"column:subject;not null"`
	Message     string    `gorm:"column:message;not null"`
	IsRead      bool      `gorm:"column:is_read;not null;default:false"`
	SubmittedAt time.Time `gorm:"column:submitted_at;autoCreateTime"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
