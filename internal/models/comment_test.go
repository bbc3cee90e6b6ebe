package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentForPublicComment(t *testing.T) {
	c := Comment{AuthorProfileID: 1, Content: "hello"}

	assert.Equal(t, "hello", c.ContentFor(0, 2, 0), "anonymous viewer")
	assert.Equal(t, "hello", c.ContentFor(99, 2, 0), "stranger")
}

func TestContentForPrivateComment(t *testing.T) {
	const (
		commentAuthor = uint(1)
		postAuthor    = uint(2)
		parentAuthor  = uint(3)
		stranger      = uint(4)
	)
	c := Comment{AuthorProfileID: commentAuthor, Content: "secret", IsPrivate: true}

	t.Run("comment author reads it", func(t *testing.T) {
		assert.Equal(t, "secret", c.ContentFor(commentAuthor, postAuthor, 0))
	})

	t.Run("post author reads it", func(t *testing.T) {
		assert.Equal(t, "secret", c.ContentFor(postAuthor, postAuthor, 0))
	})

	t.Run("parent comment author reads a private reply", func(t *testing.T) {
		assert.Equal(t, "secret", c.ContentFor(parentAuthor, postAuthor, parentAuthor))
	})

	t.Run("stranger is masked", func(t *testing.T) {
		assert.Equal(t, MaskedContent, c.ContentFor(stranger, postAuthor, parentAuthor))
	})

	t.Run("anonymous viewer is masked", func(t *testing.T) {
		assert.Equal(t, MaskedContent, c.ContentFor(0, postAuthor, 0))
	})
}
