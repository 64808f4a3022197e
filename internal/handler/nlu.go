package handler

import (
	"errors"
	"net/http"

	"nlu/internal/model"
	"nlu/internal/repository"
	"nlu/internal/service"

	"github.com/gin-gonic/gin"
)

// NLUHandler handles NLU HTTP requests
type NLUHandler struct {
	nluService *service.NLUService
}

// NewNLUHandler creates a new NLU handler
func NewNLUHandler(nluService *service.NLUService) *NLUHandler {
	return &NLUHandler{
		nluService: nluService,
	}
}

// Process handles POST /nlu and POST /api/v1/nlu
func (h *NLUHandler) Process(c *gin.Context) {
	var req model.NLURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.nluService.Process(&req))
}

// GetLog handles GET /api/v1/nlu/logs/:request_id
func (h *NLUHandler) GetLog(c *gin.Context) {
	entry, err := h.nluService.GetLog(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		writeLogError(c, err, "Failed to get log")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// writeLogError maps request log errors to HTTP status codes
func writeLogError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrLoggingDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request logging is disabled"})
	case errors.Is(err, repository.ErrLogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg + ": " + err.Error()})
	}
}
