package models

import "gorm.io/gorm"

// User represents an account. It only carries the credential; everything
// user-facing lives on the Profile, which is created together with it.
type User struct {
	gorm.Model
	LoginID      string `gorm:"size:50;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	Profile Profile `gorm:"foreignKey:UserID"`
}
