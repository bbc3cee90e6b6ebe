package models

import "time"

// Heart records one like of a post by an account. The unique index is what
// serializes concurrent toggles: exactly one of two racing creates wins.
type Heart struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"uniqueIndex:idx_heart_post_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_heart_post_user;not null"`
	CreatedAt time.Time

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// CommentHeart records one like of a comment by an account.
type CommentHeart struct {
	ID        uint `gorm:"primaryKey"`
	CommentID uint `gorm:"uniqueIndex:idx_comment_heart_pair;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_comment_heart_pair;not null"`
	CreatedAt time.Time

	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
