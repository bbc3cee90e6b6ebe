package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Visibility is the declared audience of a post.
type Visibility string

const (
	VisibilityEveryone Visibility = "everyone"
	VisibilityMutual   Visibility = "mutual"
	VisibilityMe       Visibility = "me"
)

// ValidVisibility reports whether v is one of the declared audiences.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityEveryone, VisibilityMutual, VisibilityMe:
		return true
	}
	return false
}

// PostSubject is the fine-grained topic a post is filed under.
type PostSubject string

// PostKeyword is the coarse bucket a subject maps into. It is derived, never
// set by clients.
type PostKeyword string

const (
	KeywordNone          PostKeyword = "none"
	KeywordEntertainArt  PostKeyword = "entertainment_art"
	KeywordLifeKnowhow   PostKeyword = "life_knowhow_shopping"
	KeywordHobbyTravel   PostKeyword = "hobby_leisure_travel"
	KeywordKnowledgeTrend PostKeyword = "knowledge_trend"
)

// subjectKeywords is the fixed many-to-one mapping from subject to keyword
// bucket. It doubles as the closed enumeration of valid subjects.
var subjectKeywords = map[PostSubject]PostKeyword{
	"none": KeywordNone,

	"literature":      KeywordEntertainArt,
	"movie":           KeywordEntertainArt,
	"art_design":      KeywordEntertainArt,
	"performance":     KeywordEntertainArt,
	"music":           KeywordEntertainArt,
	"drama":           KeywordEntertainArt,
	"celebrity":       KeywordEntertainArt,
	"comic_animation": KeywordEntertainArt,
	"broadcast":       KeywordEntertainArt,

	"daily":           KeywordLifeKnowhow,
	"couple_marriage": KeywordLifeKnowhow,
	"parenting":       KeywordLifeKnowhow,
	"pet":             KeywordLifeKnowhow,
	"cooking_recipe":  KeywordLifeKnowhow,
	"interior_diy":    KeywordLifeKnowhow,
	"handicraft":      KeywordLifeKnowhow,
	"product_review":  KeywordLifeKnowhow,
	"beauty_fashion":  KeywordLifeKnowhow,

	"game":            KeywordHobbyTravel,
	"sports":          KeywordHobbyTravel,
	"photo":           KeywordHobbyTravel,
	"car":             KeywordHobbyTravel,
	"hobby":           KeywordHobbyTravel,
	"domestic_travel": KeywordHobbyTravel,
	"world_travel":    KeywordHobbyTravel,
	"restaurant":      KeywordHobbyTravel,

	"it_computer":      KeywordKnowledgeTrend,
	"society_politics": KeywordKnowledgeTrend,
	"health_medical":   KeywordKnowledgeTrend,
	"business_economy": KeywordKnowledgeTrend,
	"language":         KeywordKnowledgeTrend,
	"education":        KeywordKnowledgeTrend,
}

// KeywordForSubject maps a subject to its keyword bucket. The bool result is
// false for subjects outside the closed enumeration.
func KeywordForSubject(s PostSubject) (PostKeyword, bool) {
	kw, ok := subjectKeywords[s]
	return kw, ok
}

// ValidKeyword reports whether kw is a known keyword bucket.
func ValidKeyword(kw PostKeyword) bool {
	switch kw {
	case KeywordNone, KeywordEntertainArt, KeywordLifeKnowhow, KeywordHobbyTravel, KeywordKnowledgeTrend:
		return true
	}
	return false
}

// Post is a blog post. AuthorID is always the account (User) id.
type Post struct {
	gorm.Model
	AuthorID   uint        `gorm:"not null;index"`
	Category   string      `gorm:"size:50;not null"`
	Subject    PostSubject `gorm:"size:30;not null;default:'none'"`
	Keyword    PostKeyword `gorm:"size:30;not null;default:'none'"`
	Title      string      `gorm:"size:100;not null"`
	Visibility Visibility  `gorm:"size:10;not null;default:'everyone'"`

	// IsComplete flips from draft to published exactly once and never back.
	IsComplete bool `gorm:"not null;default:false"`

	// Denormalized caches. Recomputed from Heart/Comment rows inside every
	// mutating transaction, never incremented in place.
	LikeCount    int64 `gorm:"not null;default:0"`
	CommentCount int64 `gorm:"not null;default:0"`

	Author User        `gorm:"foreignKey:AuthorID"`
	Texts  []PostText  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Images []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// BeforeSave rederives the keyword bucket from the subject on every save.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	kw, ok := KeywordForSubject(p.Subject)
	if !ok {
		return fmt.Errorf("unknown post subject %q", p.Subject)
	}
	p.Keyword = kw
	return nil
}

// PostText is one ordered text block of a post.
type PostText struct {
	ID       uint   `gorm:"primaryKey"`
	PostID   uint   `gorm:"not null;index"`
	Position int    `gorm:"not null;default:0"`
	Content  string `gorm:"type:text;not null"`
	Font     string `gorm:"size:50;not null;default:'nanum_gothic'"`
	FontSize int    `gorm:"not null;default:15"`
	IsBold   bool   `gorm:"not null;default:false"`
}

// PostImage is one image attachment of a post. Path points into the media
// store; the row only holds the reference.
type PostImage struct {
	ID               uint   `gorm:"primaryKey"`
	PostID           uint   `gorm:"not null;index"`
	Path             string `gorm:"size:512;not null"`
	Caption          string `gorm:"size:255"`
	IsRepresentative bool   `gorm:"not null;default:false"`
}

// CountRepresentatives returns how many images are flagged representative.
func CountRepresentatives(images []PostImage) int {
	n := 0
	for _, img := range images {
		if img.IsRepresentative {
			n++
		}
	}
	return n
}

// NormalizeRepresentative enforces the single-representative invariant over
// a post's images: more than one flagged image is an error, and when none is
// flagged while images exist the first is promoted. It returns true when a
// promotion happened (the caller must persist the changed image).
func NormalizeRepresentative(images []PostImage) (promoted bool, err error) {
	switch n := CountRepresentatives(images); {
	case n > 1:
		return false, fmt.Errorf("post has %d representative images, want at most 1", n)
	case n == 0 && len(images) > 0:
		images[0].IsRepresentative = true
		return true, nil
	}
	return false, nil
}
