package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alkime/blogsmith/internal/archive"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

const (
	defaultHistoryLimit = 20
	// maxGenerateBody leaves room for a MaxTopicLength topic in any script.
	maxGenerateBody = 4 << 10
)

type generateRequest struct {
	Topic string `json:"topic"`
	Tone  string `json:"tone"`
}

type copyResponse struct {
	Content string `json:"content"`
	Copied  bool   `json:"copied"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "blogsmith",
	})
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
}

func (s *Server) handleTones(c *gin.Context) {
	defs := make([]tone.Definition, 0, tone.Count)
	for _, t := range tone.All() {
		defs = append(defs, t.Definition())
	}

	c.JSON(http.StatusOK, gin.H{
		"tones":   defs,
		"default": tone.Default().String(),
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sess := s.sessions.New()
	c.JSON(http.StatusCreated, sess.Snapshot())
}

// lookupSession resolves :id or writes a 404.
func (s *Server) lookupSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if !s.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGenerate(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxGenerateBody)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	t := tone.Default()
	if req.Tone != "" {
		parsed, err := tone.Parse(req.Tone)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "tone"})
			return
		}
		t = parsed
	}

	if err := sess.RequestGeneration(req.Topic, t); err != nil {
		s.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, sess.Snapshot())
}

func (s *Server) handleCopy(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	if err := sess.CopyToClipboard(); err != nil {
		s.writeSessionError(c, err)
		return
	}

	snap := sess.Snapshot()
	resp := copyResponse{Copied: snap.Copied}
	if snap.Artifact != nil {
		resp.Content = snap.Artifact.Content
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDownload(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	d, err := sess.DownloadAsFile()
	if err != nil {
		s.writeSessionError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	c.Data(http.StatusOK, d.MimeType+"; charset=utf-8", d.Data)
}

func (s *Server) handlePreview(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if snap.Status != session.StatusReady || snap.Artifact == nil {
		s.writeSessionError(c, session.ErrNotReady)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(snap.Artifact.Content), &buf); err != nil {
		s.logger.Error("Failed to render preview", "session_id", snap.ID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to render preview"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleReset(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	sess.Reset()
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer", Field: "limit"})
			return
		}
		limit = n
	}

	var tones []tone.Tone
	if raw := c.Query("tone"); raw != "" {
		t, err := tone.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "tone"})
			return
		}
		tones = append(tones, t)
	}

	entries, err := s.archive.List(limit, tones...)
	if err != nil {
		s.logger.Error("Failed to list history", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list history"})
		return
	}
	if entries == nil {
		entries = []archive.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// writeSessionError maps session errors onto HTTP statuses.
func (s *Server) writeSessionError(c *gin.Context, err error) {
	var ve *session.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Reason, Field: ve.Field})
	case errors.Is(err, session.ErrNotReady):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, session.ErrClosed):
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
	default:
		s.logger.Error("Session operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
