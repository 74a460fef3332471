package handlers

import (
	"smarthome_gateway/internal/hub"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP and WebSocket layer to services and logging.
type Handler struct {
	services *service.Service
	hub      *hub.Hub
	log      *logger.Logger
}

// NewHandler constructs the HTTP handler with its dependencies.
func NewHandler(services *service.Service, h *hub.Hub, log *logger.Logger) *Handler {
	return &Handler{services: services, hub: h, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// Device websocket (raw line protocol) and dashboard websocket.
	router.GET("/raw", h.wsDevice)
	router.GET("/ws", h.wsDashboard)

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		esp32 := api.Group("/esp32")
		{
			esp32.POST("/register", h.registerDevice)
			esp32.POST("/message", h.deviceMessage)
			esp32.POST("/status", h.deviceStatus)
		}

		api.GET("/status", h.getStatus)
		api.GET("/sensors", h.getSensors)

		api.POST("/command", h.sendCommand)
		api.POST("/door", h.doorCommand)
		api.POST("/security-mode", h.setSecurityMode)
		api.POST("/auto-mode", h.setAutoMode)

		api.GET("/history", h.getHistory)
		api.DELETE("/history", h.clearHistory)
		api.GET("/alerts", h.getAlerts)
		api.DELETE("/alerts", h.clearAlerts)

		schedule := api.Group("/schedule")
		{
			schedule.POST("", h.addScheduleRule)
			schedule.GET("", h.listScheduleRules)
			schedule.DELETE("/:id", h.removeScheduleRule)
		}

		ai := api.Group("/ai")
		{
			ai.GET("/patterns", h.getPatterns)
			ai.GET("/suggestions", h.getSuggestions)
			ai.GET("/predict", h.getPrediction)
		}

		api.POST("/assistant", h.assistantMessage)
		api.GET("/assistant/status", h.assistantStatus)

		voice := api.Group("/voice")
		{
			voice.POST("/transcript", h.submitTranscript)
			voice.POST("/transcript-drive", h.submitTranscript)
			voice.GET("/pending-transcripts", h.pendingTranscripts)
		}
	}
}
