package server

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
)

// sseWriter emits server-sent events on a gin response writer, flushing
// after every event so chunks reach the client as they are generated.
type sseWriter struct {
	writer gin.ResponseWriter
}

func newSSEWriter(c *gin.Context) *sseWriter {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	return &sseWriter{writer: c.Writer}
}

// writeChunk emits one incremental piece of the reply.
func (w *sseWriter) writeChunk(content string) error {
	return w.writeEvent("chunk", gin.H{"content": content})
}

// writeDone closes the stream, carrying the session token and the full
// assembled reply so the client can reconcile its rendering.
func (w *sseWriter) writeDone(session, content string) error {
	return w.writeEvent("done", gin.H{"session": session, "content": content})
}

func (w *sseWriter) writeEvent(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := fmt.Fprintf(w.writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	w.writer.Flush()
	return nil
}
