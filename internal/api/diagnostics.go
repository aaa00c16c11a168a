package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// googleServices handles GET /diagnostics/google-services
func (s *Server) googleServices(c *gin.Context) {
	if s.deps.Diagnostics == nil {
		msg := "Google services are not configured"
		if s.deps.DiagnosticsUnavailable != nil {
			msg = s.deps.DiagnosticsUnavailable.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Google Services test failed",
			"error":   msg,
		})
		return
	}

	report, err := s.deps.Diagnostics.Run(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Google Services test failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Google Services test successful",
		"gemini":    report.Gemini,
		"translate": report.Translate,
	})
}
