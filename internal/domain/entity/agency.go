package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agency is a branch that quotes are attributed to
type Agency struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	City      *string   `gorm:"size:255" json:"city,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Manager   *string   `gorm:"size:255" json:"manager,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new agency
func (a *Agency) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Agency model
func (Agency) TableName() string {
	return "agencies"
}
