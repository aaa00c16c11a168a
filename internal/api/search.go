package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/influencer-hub/internal/discovery"
	"github.com/influencer-hub/internal/models"
	"github.com/influencer-hub/internal/youtube"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// searchCreators handles GET /creator-search
func (s *Server) searchCreators(c *gin.Context) {
	req := discovery.Request{
		Query:      c.Query("query"),
		RegionCode: c.Query("countryCode"),
		MaxResults: c.Query("maxResults"),
	}

	candidates, err := s.deps.Searcher.Search(c.Request.Context(), req)
	s.recordSearch(c, req, len(candidates), err)
	if err != nil {
		de := discovery.AsError(err)
		_ = c.Error(err)
		c.JSON(de.Status, gin.H{"error": de.Message})
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// recordSearch stores the request outcome. It never affects the response.
func (s *Server) recordSearch(c *gin.Context, req discovery.Request, results int, err error) {
	if s.deps.History == nil || req.Query == "" {
		return
	}

	rec := models.SearchRecord{
		Query:       req.Query,
		RegionCode:  req.RegionCode,
		MaxResults:  discovery.ParseMaxResults(req.MaxResults),
		ResultCount: results,
		Status:      models.SearchStatusOK,
	}
	if err != nil {
		rec.Status = models.SearchStatusError
		rec.ResultCount = 0
	}

	if err := s.deps.History.RecordSearch(c.Request.Context(), rec); err != nil {
		s.logger.Warn("Failed to record search", zap.String("query", req.Query), zap.Error(err))
	}
}

// searchHistory handles GET /creator-search/history
func (s *Server) searchHistory(c *gin.Context) {
	if s.deps.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search history is not configured"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := s.deps.History.RecentSearches(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load search history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// getChannel handles GET /channels/:id
func (s *Server) getChannel(c *gin.Context) {
	if s.deps.Profiles == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": youtube.ErrMissingAPIKey.Error()})
		return
	}

	profile, err := s.deps.Profiles.GetChannel(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		var apiErr *googleapi.Error
		switch {
		case errors.Is(err, youtube.ErrChannelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		case errors.As(err, &apiErr) && apiErr.Code != 0:
			msg := apiErr.Message
			if msg == "" {
				msg = discovery.MsgChannelsFailed
			}
			c.JSON(apiErr.Code, gin.H{"error": msg})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": discovery.MsgInternal})
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}
