package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome_gateway/internal/models"
)

// commandRequest wraps one command code; a number or a door letter.
type commandRequest struct {
	Command models.Command `json:"command"`
}

// doorRequest names a configured door and an action.
type doorRequest struct {
	Door   string `json:"door"`
	Action string `json:"action" binding:"required"`
}

type modeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary      Send a command to the controller
// @Description  Light codes 1-18 or a configured door letter
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body  commandRequest  true  "Command"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/command [post]
func (h *Handler) sendCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sent, err := h.services.SendCommand(req.Command, "api")
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "command_rejected", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "command": req.Command, "sent": sent})
}

// @Summary      Open or close a door
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body  doorRequest  true  "Door action"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/door [post]
func (h *Handler) doorCommand(c *gin.Context) {
	var req doorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	cmd, sent, err := h.services.SendDoorCommand(req.Door, req.Action, "api")
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "door_command_rejected", err, "door", req.Door)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"door":    req.Door,
		"action":  req.Action,
		"command": cmd,
		"sent":    sent,
	})
}

// @Summary      Toggle security mode
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body  modeRequest  true  "Enabled flag"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/security-mode [post]
func (h *Handler) setSecurityMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.SetSecurityMode(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "securityMode": *req.Enabled})
}

// @Summary      Toggle automation mode
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body  modeRequest  true  "Enabled flag"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/auto-mode [post]
func (h *Handler) setAutoMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.SetAutoMode(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "autoMode": *req.Enabled})
}
