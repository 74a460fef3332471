package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// assistantRequest carries one natural-language message.
type assistantRequest struct {
	Message string `json:"message" binding:"required"`
}

// @Summary      Interpret and execute a natural-language command
// @Description  Ollama-backed with a deterministic local fallback
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  assistantRequest  true  "Message"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/assistant [post]
func (h *Handler) assistantMessage(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	action, reply := h.services.HandleMessage(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"response": reply,
		"action":   action,
	})
}

// @Summary      External interpreter availability
// @Tags         assistant
// @Produce      json
// @Success      200  {object}  models.AssistantStatus
// @Router       /api/assistant/status [get]
func (h *Handler) assistantStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Availability(c.Request.Context()))
}

// @Summary      Light usage patterns
// @Description  Hours of day with the most light activations
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ai/patterns [get]
func (h *Handler) getPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patterns": h.services.Patterns()})
}

// @Summary      Contextual suggestions
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ai/suggestions [get]
func (h *Handler) getSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.services.Suggestions()})
}

// @Summary      Activity prediction
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/ai/predict [get]
func (h *Handler) getPrediction(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prediction": h.services.Prediction()})
}
