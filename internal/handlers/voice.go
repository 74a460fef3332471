package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// transcriptRequest is a wearable voice transcript submission.
type transcriptRequest struct {
	DeviceID   string `json:"deviceId"`
	Transcript string `json:"transcript" binding:"required"`
	Source     string `json:"source"`
}

// @Summary      Submit a voice transcript
// @Description  Queued for dashboard pickup; the queue holds the newest 20
// @Tags         voice
// @Accept       json
// @Produce      json
// @Param        body  body  transcriptRequest  true  "Transcript"
// @Success      200  {object}  models.Transcript
// @Failure      400  {object}  map[string]string
// @Router       /api/voice/transcript [post]
func (h *Handler) submitTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if req.Source == "" {
		req.Source = "wearable"
	}
	t := h.services.SubmitTranscript(req.DeviceID, req.Transcript, req.Source)
	c.JSON(http.StatusOK, t)
}

// @Summary      Drain pending transcripts
// @Description  Returns and clears the queue; each transcript is delivered once
// @Tags         voice
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/voice/pending-transcripts [get]
func (h *Handler) pendingTranscripts(c *gin.Context) {
	transcripts := h.services.DrainTranscripts()
	c.JSON(http.StatusOK, gin.H{
		"transcripts": transcripts,
		"count":       len(transcripts),
	})
}
