package models

import (
	"time"

	"gorm.io/gorm"
)

type Recipe struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"not null" json:"title"`
	Instructions      string    `gorm:"type:text;not null" json:"instructions"`
	MinutesToComplete *int      `json:"minutes_to_complete"`
	UserID            *uint     `gorm:"index" json:"user_id"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Validate reports the first invalid field, title first.
func (r *Recipe) Validate() error {
	if err := ValidateTitle(r.Title); err != nil {
		return err
	}
	if err := ValidateInstructions(r.Instructions); err != nil {
		return err
	}
	return ValidateMinutes(r.MinutesToComplete)
}

func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}
