package handler

import (
	"io"

	"blogring/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// StreamActivity godoc
// @Summary      Stream activity events
// @Description  Opens a server-sent-events stream of the current user's activity: incoming neighbor requests, accepted requests, and new comments and hearts on their posts.
// @Tags         activity
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string "SSE stream"
// @Router       /activity/stream [get]
func StreamActivity(c *gin.Context) {
	userID := currentUserID(c)

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(userID, client)
	defer hub.GlobalHub.Unsubscribe(userID, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
