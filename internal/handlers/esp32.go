package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome_gateway/internal/models"
)

// registerRequest is the HTTP registration payload.
type registerRequest struct {
	DeviceID string `json:"deviceId" binding:"required"`
	IP       string `json:"ip"`
	RSSI     int    `json:"rssi"`
	Version  string `json:"version"`
}

// messageRequest carries one raw protocol line over HTTP.
type messageRequest struct {
	DeviceID string `json:"deviceId" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// statusRequest is the periodic device status report.
type statusRequest struct {
	DeviceID     string `json:"deviceId" binding:"required"`
	IP           string `json:"ip"`
	RSSI         int    `json:"rssi"`
	Status       string `json:"status"`
	UptimeSec    int64  `json:"uptime"`
	ArduinoReady bool   `json:"arduinoReady"`
}

// @Summary      Register a controller
// @Tags         esp32
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Device metadata"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/esp32/register [post]
func (h *Handler) registerDevice(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.RegisterDevice(models.Device{
		ID:      req.DeviceID,
		IP:      req.IP,
		RSSI:    req.RSSI,
		Version: req.Version,
	})
	c.JSON(http.StatusOK, gin.H{"status": "registered", "deviceId": req.DeviceID})
}

// @Summary      Submit one protocol line over HTTP
// @Tags         esp32
// @Accept       json
// @Produce      json
// @Param        body  body  messageRequest  true  "Raw controller line"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/esp32/message [post]
func (h *Handler) deviceMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.ProcessDeviceLine(req.DeviceID, req.Message)
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// @Summary      Update device status
// @Tags         esp32
// @Accept       json
// @Produce      json
// @Param        body  body  statusRequest  true  "Status report"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/esp32/status [post]
func (h *Handler) deviceStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.UpdateDeviceStatus(models.Device{
		ID:           req.DeviceID,
		IP:           req.IP,
		RSSI:         req.RSSI,
		Status:       req.Status,
		UptimeSec:    req.UptimeSec,
		ArduinoReady: req.ArduinoReady,
	})
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
