package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contentFailed = "Failed to fetch data from Sanity"

// queryContent handles GET /content and returns the raw query result
func (s *Server) queryContent(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter"})
		return
	}

	raw, err := s.deps.Content.Fetch(c.Request.Context(), query)
	if err != nil {
		s.contentError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (s *Server) listCreators(c *gin.Context) {
	creators, err := s.deps.Content.Creators(c.Request.Context())
	if err != nil {
		s.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, creators)
}

func (s *Server) listCampaigns(c *gin.Context) {
	campaigns, err := s.deps.Content.Campaigns(c.Request.Context())
	if err != nil {
		s.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func (s *Server) listContractTemplates(c *gin.Context) {
	templates, err := s.deps.Content.ContractTemplates(c.Request.Context())
	if err != nil {
		s.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (s *Server) contentError(c *gin.Context, err error) {
	s.logger.Error("Error fetching data from Sanity", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": contentFailed})
}
