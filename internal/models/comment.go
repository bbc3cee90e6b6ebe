package models

import "gorm.io/gorm"

// TombstoneContent replaces the content of a deleted top-level comment that
// still has replies, so the reply thread stays intact.
const TombstoneContent = "This comment has been deleted."

// MaskedContent is what everyone outside a private comment's audience sees
// instead of the real content.
const MaskedContent = "This is a private comment."

// Comment belongs to a post and a profile. A comment is either top-level
// (IsParent, ParentID nil) or a reply to a top-level comment; replies to
// replies are rejected, so the tree is at most two levels deep.
type Comment struct {
	gorm.Model
	PostID          uint   `gorm:"not null;index"`
	AuthorProfileID uint   `gorm:"not null;index"`
	AuthorName      string `gorm:"size:15;not null"`
	Content         string `gorm:"type:text;not null"`
	ParentID        *uint  `gorm:"index"`
	IsParent        bool   `gorm:"not null;default:true"`
	IsPrivate       bool   `gorm:"not null;default:false"`
	IsPostAuthor    bool   `gorm:"not null;default:false"`
	LikeCount       int64  `gorm:"not null;default:0"`
	IsRead          bool   `gorm:"not null;default:false"`

	Post   Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Author Profile  `gorm:"foreignKey:AuthorProfileID"`
	Parent *Comment `gorm:"foreignKey:ParentID"`
}

// BeforeSave rederives IsPostAuthor by resolving the post author's profile.
// The comparison always goes through profiles, never mixes in account ids.
func (c *Comment) BeforeSave(tx *gorm.DB) error {
	var post Post
	if err := tx.Select("author_id").First(&post, c.PostID).Error; err != nil {
		return err
	}
	var authorProfile Profile
	if err := tx.Select("id", "user_id").First(&authorProfile, c.AuthorProfileID).Error; err != nil {
		return err
	}
	c.IsPostAuthor = authorProfile.UserID == post.AuthorID
	return nil
}

// ContentFor returns the content the given viewer is allowed to see. Private
// comments are masked, not excluded: only the comment's author, the post's
// author, and (for replies) the parent comment's author read the real text.
// parentAuthorProfileID is zero for top-level comments.
func (c *Comment) ContentFor(viewerProfileID, postAuthorProfileID, parentAuthorProfileID uint) string {
	if !c.IsPrivate {
		return c.Content
	}
	if viewerProfileID != 0 {
		if viewerProfileID == c.AuthorProfileID || viewerProfileID == postAuthorProfileID {
			return c.Content
		}
		if parentAuthorProfileID != 0 && viewerProfileID == parentAuthorProfileID {
			return c.Content
		}
	}
	return MaskedContent
}
