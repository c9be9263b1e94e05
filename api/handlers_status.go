package api

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	h := s.health.Check(c.Request.Context(), false)
	c.JSON(h.HTTPStatus(), h)
}

func (s *Server) handleHealthDetailed(c *gin.Context) {
	h := s.health.Check(c.Request.Context(), true)
	c.JSON(h.HTTPStatus(), h)
}

// handleReady answers 200 only once genesis has been committed.
func (s *Server) handleReady(c *gin.Context) {
	if s.app.LastBlockHeight() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

func (s *Server) handleStatus(c *gin.Context) {
	commitID := s.app.LastCommitID()
	c.JSON(http.StatusOK, StatusResponse{
		ChainID:        s.app.ChainID(),
		Height:         commitID.Version,
		AppHash:        hex.EncodeToString(commitID.Hash),
		LastCommitTime: s.app.LastCommitTime(),
	})
}
