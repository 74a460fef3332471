package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseLimit reads a ?limit= query, returning fallback when absent or
// unusable.
func parseLimit(c *gin.Context, fallback int) int {
	s := c.Query("limit")
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// @Summary      Event history
// @Description  Newest entries of the bounded history log
// @Tags         logs
// @Produce      json
// @Param        limit  query  int     false  "Max entries (default 100)"
// @Param        type   query  string  false  "Filter by event type"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	events, total := h.services.History(parseLimit(c, 0), c.Query("type"))
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
		"total":  total,
	})
}

// @Summary      Clear event history
// @Tags         logs
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/history [delete]
func (h *Handler) clearHistory(c *gin.Context) {
	h.services.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// @Summary      Alert list
// @Description  Newest alerts first
// @Tags         logs
// @Produce      json
// @Param        limit  query  int  false  "Max alerts (default all)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/alerts [get]
func (h *Handler) getAlerts(c *gin.Context) {
	alerts := h.services.Alerts(parseLimit(c, 0))
	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// @Summary      Clear alerts
// @Tags         logs
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/alerts [delete]
func (h *Handler) clearAlerts(c *gin.Context) {
	h.services.ClearAlerts()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
