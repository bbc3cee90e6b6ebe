package models

import "gorm.io/gorm"

// Default picture paths assigned at signup. They are shared placeholders and
// must never be released from storage.
const (
	DefaultBlogPic = "default/blog_default.jpg"
	DefaultUserPic = "default/user_default.jpg"
)

// Profile is the public face of an account, one per User. Profiles are
// created atomically with their User and can never be deleted.
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Username string `gorm:"size:15;not null;default:'Unnamed'"`
	BlogName string `gorm:"size:20;not null"`
	Intro    string `gorm:"size:100"`
	BlogPic  string `gorm:"size:512;not null;default:'default/blog_default.jpg'"`
	UserPic  string `gorm:"size:512;not null;default:'default/user_default.jpg'"`

	// URLName is the profile's handle. It may be changed at most once;
	// URLNameEditCount tracks whether that change has been spent.
	URLName          string `gorm:"size:30;uniqueIndex;not null"`
	URLNameEditCount uint   `gorm:"not null;default:0"`

	// NeighborVisibility controls whether the mutual-neighbor list is
	// shown to anyone at all.
	NeighborVisibility bool `gorm:"not null;default:true"`
}
