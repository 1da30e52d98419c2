package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
)

type feedSubscription[T any] interface {
	Updates() <-chan []T
	Err() error
	Cancel()
}

// stream forwards every snapshot of sub as a server-sent "snapshot" event
// until the client leaves or the feed ends. A feed that ends with an error
// sends a final "error" event.
func stream[T any](c *gin.Context, sub feedSubscription[T], render func([]T) any) {
	defer sub.Cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(io.Writer) bool {
		select {
		case items, ok := <-sub.Updates():
			if !ok {
				if err := sub.Err(); err != nil {
					c.SSEvent("error", gin.H{"error": "stream_closed", "message": err.Error()})
				}
				return false
			}
			c.SSEvent("snapshot", render(items))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
