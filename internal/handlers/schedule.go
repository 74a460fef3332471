package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome_gateway/internal/models"
)

// scheduleRequest is the rule creation payload.
type scheduleRequest struct {
	Time    string         `json:"time" binding:"required"`
	Days    []int          `json:"days"`
	Command models.Command `json:"command"`
	Name    string         `json:"name"`
}

// @Summary      Create a schedule rule
// @Description  Fires the command at HH:MM on the given weekdays (0=Sunday)
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        body  body  scheduleRequest  true  "Rule"
// @Success      201  {object}  models.ScheduleRule
// @Failure      400  {object}  map[string]string
// @Router       /api/schedule [post]
func (h *Handler) addScheduleRule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rule, err := h.services.AddRule(models.ScheduleRule{
		Time:    req.Time,
		Days:    req.Days,
		Command: req.Command,
		Name:    req.Name,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "schedule_rule_rejected", err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// @Summary      List schedule rules
// @Tags         schedule
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/schedule [get]
func (h *Handler) listScheduleRules(c *gin.Context) {
	rules := h.services.Rules()
	c.JSON(http.StatusOK, gin.H{"rules": rules, "count": len(rules)})
}

// @Summary      Delete a schedule rule
// @Tags         schedule
// @Produce      json
// @Param        id  path  string  true  "Rule id"
// @Success      200  {object}  map[string]string
// @Router       /api/schedule/{id} [delete]
func (h *Handler) removeScheduleRule(c *gin.Context) {
	h.services.RemoveRule(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
