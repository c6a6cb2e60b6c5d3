package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yechat/internal/history"
	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

const (
	// sessionCookieName carries the identity token between requests.
	sessionCookieName = "yechat_session"

	// sessionCookieMaxAge keeps the session cookie alive for a year.
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// sessionIdentity returns the identity for the request, minting a fresh one
// and setting the cookie when the request carries none or an invalid value.
func (s *Server) sessionIdentity(c *gin.Context) session.Identity {
	value, err := c.Cookie(sessionCookieName)
	if err == nil {
		if id, parseErr := session.Parse(value); parseErr == nil {
			return id
		}
		s.logger.Debug("Replacing invalid session cookie", "value_length", len(value))
	}

	id := session.New()
	s.setSessionCookie(c, id)
	return id
}

func (s *Server) setSessionCookie(c *gin.Context, id session.Identity) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, id.Token(), sessionCookieMaxAge, "/", "", false, true)
}

// handleIndex renders the chat page with the persona's title and caption.
// The raw-transcript link only appears when the store can export one.
func (s *Server) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	_, exportable := s.store.(history.Exporter)

	if err := s.indexTmpl.Execute(c.Writer, gin.H{
		"Title":      s.persona.Title,
		"Caption":    s.persona.Caption,
		"Name":       s.persona.Name,
		"Transcript": exportable,
	}); err != nil {
		s.logger.Error("Index template failed", "error", err)
	}
}

func (s *Server) handleAppJS(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", appJS)
}

func (s *Server) handleStyleCSS(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", styleCSS)
}

// handleHistory returns the session token, the public persona fields, and
// the conversation so far. Fresh sessions come back with the greeting
// already in place.
func (s *Server) handleHistory(c *gin.Context) {
	id := s.sessionIdentity(c)
	log := s.store.Load(id)

	c.JSON(http.StatusOK, gin.H{
		"session": id.Token(),
		"persona": s.persona,
		"turns":   log,
	})
}

// handleChat appends the user's message, streams the generated reply as
// SSE, and appends the assistant turn. Generation failures stream the
// persona's fallback reply instead; the conversation always gains exactly
// two turns.
func (s *Server) handleChat(c *gin.Context) {
	id := s.sessionIdentity(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	log := s.store.Append(id, chattypes.Turn{Role: chattypes.RoleUser, Content: message})

	sse := newSSEWriter(c)

	reply, err := s.streamReply(c, sse, log)
	if err != nil || reply == "" {
		if err != nil {
			s.logger.Error("Reply generation failed", "provider", s.generator.Name(), "session", id.Token(), "error", err)
		}
		reply = s.persona.FallbackReply
		_ = sse.writeChunk(reply)
	}

	s.store.Append(id, chattypes.Turn{Role: chattypes.RoleAssistant, Content: reply})

	_ = sse.writeDone(id.Token(), reply)
}

// streamReply forwards generator chunks to the client and returns the
// assembled reply. Write failures are ignored; a disconnected client does
// not keep the reply out of the store.
func (s *Server) streamReply(c *gin.Context, sse *sseWriter, log chattypes.Log) (string, error) {
	var reply strings.Builder

	for chunk := range s.generator.Stream(c.Request.Context(), s.persona, log) {
		if chunk.Error != nil {
			return "", chunk.Error
		}
		if chunk.Done {
			break
		}

		reply.WriteString(chunk.Content)
		_ = sse.writeChunk(chunk.Content)
	}

	return reply.String(), nil
}

// handleTranscript serves the raw persisted transcript. Only stores with
// a line-delimited on-disk form expose one.
func (s *Server) handleTranscript(c *gin.Context) {
	exporter, ok := s.store.(history.Exporter)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "transcript download requires the text history format"})
		return
	}

	id := s.sessionIdentity(c)

	data, err := exporter.Export(id)
	if err != nil {
		if errors.Is(err, history.ErrNoTranscript) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no transcript recorded for this session"})
			return
		}
		s.logger.Error("Transcript export failed", "session", id.Token(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read transcript"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="chat_history.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// handleHealth reports overall service health. Storage degradation flips
// the status code to 503 so probes notice silent write failures.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"storage": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": "ok",
	})
}
