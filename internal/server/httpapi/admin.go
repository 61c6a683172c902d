package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/neoportfolio/internal/models"
	"github.com/dmitrijs2005/neoportfolio/internal/server/auth"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type generateRequest struct {
	Title string `json:"title"`
}

type uploadRequest struct {
	Filename string `json:"filename"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	if err := s.services.Admin.Login(ctx, req.Password); err != nil {
		s.writeError(c, err)
		return
	}

	token, err := auth.GenerateToken(s.services.Admin.SessionID(), s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.services.Admin.Logout(ctx)
		s.logger.Error(ctx, "token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: time.Now().Add(s.tokenValidity).UTC()})
}

func (s *Server) logout(c *gin.Context) {
	s.services.Admin.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (s *Server) getConfig(c *gin.Context) {
	cfg, err := s.services.Admin.Config(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if cfg == nil {
		c.JSON(http.StatusOK, gin.H{"config": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": cfg.Masked()})
}

func (s *Server) putConfig(c *gin.Context) {
	var cfg models.SystemConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := s.services.Admin.SaveConfig(c.Request.Context(), cfg); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteConfig(c *gin.Context) {
	if err := s.services.Admin.Disconnect(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) saveProject(c *gin.Context) {
	var d models.ProjectDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := s.services.Admin.SaveProject(c.Request.Context(), d)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) savePost(c *gin.Context) {
	var d models.PostDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := s.services.Admin.SavePost(c.Request.Context(), d)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) deleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.services.Admin.DeleteProject(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.services.Admin.DeletePost(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) generatePost(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	body, err := s.services.Chat.GeneratePost(c.Request.Context(), req.Title)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": body})
}

func (s *Server) presignUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	up, err := s.services.Uploads.PresignImage(c.Request.Context(), req.Filename)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
