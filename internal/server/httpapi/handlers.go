package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.services.Admin.Status(c.Request.Context()))
}

func (s *Server) listProjects(c *gin.Context) {
	items, err := s.services.Content.Projects().List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) listPosts(c *gin.Context) {
	items, err := s.services.Content.Posts().List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// chat streams the assistant's answer as server-sent events: one "chunk"
// event per increment, then "done" with the full text. Errors raised before
// the first chunk are returned as plain JSON.
func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	streaming := false

	answer, err := s.services.Chat.Ask(ctx, req.Message, func(chunk string) error {
		if !streaming {
			streaming = true
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Status(http.StatusOK)
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
		return ctx.Err()
	})

	if err != nil {
		if !streaming {
			s.writeError(c, err)
			return
		}
		c.SSEvent("error", err.Error())
		c.Writer.Flush()
		return
	}

	if !streaming {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Status(http.StatusOK)
	}
	c.SSEvent("done", answer)
	c.Writer.Flush()
}
