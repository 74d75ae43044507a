package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Username  string       `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Password  PasswordHash `gorm:"column:password_hash;size:128" json:"-"`
	ImageURL  *string      `gorm:"size:255" json:"image_url"`
	Bio       *string      `gorm:"size:500" json:"bio"`
	CreatedAt time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword replaces the stored hash with a hash of plain.
func (u *User) SetPassword(plain string) error {
	return u.Password.Set(plain)
}

// VerifyPassword fails closed for users without a password.
func (u *User) VerifyPassword(plain string) bool {
	return u.Password.Verify(plain)
}

func (u *User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	if err := ValidateImageURL(u.ImageURL); err != nil {
		return err
	}
	return ValidateBio(u.Bio)
}

// BeforeSave runs on every create and update.
func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.Validate()
}

// UserView is the public projection of a User returned by the API.
type UserView struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	ImageURL *string  `json:"image_url"`
	Bio      *string  `json:"bio"`
	Recipes  []Recipe `json:"recipes"`
}

// Serialize builds the public view of u with the given recipes, which the
// caller loads explicitly.
func (u *User) Serialize(recipes []Recipe) UserView {
	if recipes == nil {
		recipes = []Recipe{}
	}
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
		Recipes:  recipes,
	}
}
