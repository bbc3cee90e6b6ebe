// Package visibility decides whether a viewer may read or act on a post.
// Every gated operation (post read, comment read/write, reactions) goes
// through the same decision, so the rules cannot drift between endpoints.
package visibility

import (
	"blogring/backend/internal/models"
	"blogring/backend/internal/relation"

	"gorm.io/gorm"
)

// Viewer identifies the caller. A zero Viewer is anonymous.
type Viewer struct {
	UserID uint
}

// Anonymous reports whether the viewer is unauthenticated.
func (v Viewer) Anonymous() bool { return v.UserID == 0 }

// CanView decides read access to a post and everything hanging off it
// (comment lists, heart counts). Anonymous viewers only ever see
// everyone-visibility content.
func CanView(db *gorm.DB, post *models.Post, viewer Viewer) (bool, error) {
	switch post.Visibility {
	case models.VisibilityEveryone:
		return true, nil
	case models.VisibilityMutual:
		if viewer.Anonymous() {
			return false, nil
		}
		if viewer.UserID == post.AuthorID {
			return true, nil
		}
		return relation.IsMutualUsers(db, post.AuthorID, viewer.UserID)
	case models.VisibilityMe:
		return !viewer.Anonymous() && viewer.UserID == post.AuthorID, nil
	}
	return false, nil
}

// CanWrite decides comment-write access. Identity is always required; the
// visibility rules otherwise match CanView.
func CanWrite(db *gorm.DB, post *models.Post, viewer Viewer) (bool, error) {
	if viewer.Anonymous() {
		return false, nil
	}
	return CanView(db, post, viewer)
}

// CanReact decides reaction access. Reactions on me-visibility posts are
// denied for everyone, the author included.
func CanReact(db *gorm.DB, post *models.Post, viewer Viewer) (bool, error) {
	if viewer.Anonymous() {
		return false, nil
	}
	if post.Visibility == models.VisibilityMe {
		return false, nil
	}
	return CanView(db, post, viewer)
}
