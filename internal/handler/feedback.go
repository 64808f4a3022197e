package handler

import (
	"net/http"
	"strings"

	"nlu/internal/model"
	"nlu/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles intent feedback HTTP requests
type FeedbackHandler struct {
	nluService *service.NLUService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(nluService *service.NLUService) *FeedbackHandler {
	return &FeedbackHandler{
		nluService: nluService,
	}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !model.IsIntentLabel(req.CorrectIntent) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid correct_intent. Must be one of: " + strings.Join(model.IntentLabels, ", "),
		})
		return
	}

	err := h.nluService.RecordFeedback(c.Request.Context(), req.RequestID, req.CorrectIntent)
	if err != nil {
		writeLogError(c, err, "Failed to record feedback")
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback recorded successfully",
	})
}
