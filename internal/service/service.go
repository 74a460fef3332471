package service

import (
	"context"
	"time"

	"smarthome_gateway/internal/assistant"
	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// Gateway processes inbound controller traffic: raw protocol lines and
// device lifecycle messages.
type Gateway interface {
	ProcessDeviceLine(deviceID, line string)
	IdentifyDevice(deviceID string, conn devices.Connection)
	RegisterDevice(meta models.Device)
	UpdateDeviceStatus(meta models.Device)
	Heartbeat(deviceID string)
	MarkDisconnected(deviceID string)
}

// Control exposes outbound command dispatch and mode toggles.
type Control interface {
	SendCommand(cmd models.Command, source string) (bool, error)
	SendDoorCommand(doorID, action, source string) (models.Command, bool, error)
	SetAutoMode(enabled bool)
	SetSecurityMode(enabled bool)
}

// Monitoring exposes the composed read-only system status.
type Monitoring interface {
	Status() models.StatusSnapshot
}

// EventLog exposes the bounded history and alert logs.
type EventLog interface {
	History(limit int, eventType string) ([]models.HistoryEvent, int)
	Alerts(limit int) []models.Alert
	ClearHistory()
	ClearAlerts()
}

// Schedule manages automation rules.
type Schedule interface {
	AddRule(r models.ScheduleRule) (models.ScheduleRule, error)
	RemoveRule(id string)
	Rules() []models.ScheduleRule
}

// Assistant interprets natural-language messages and executes the result.
type Assistant interface {
	HandleMessage(ctx context.Context, text string) (models.Action, string)
	Availability(ctx context.Context) models.AssistantStatus
}

// Insights derives usage patterns from the history log.
type Insights interface {
	Patterns() []HourPattern
	Suggestions() []Suggestion
	Prediction() string
}

// Voice queues wearable transcripts for dashboard pickup.
type Voice interface {
	SubmitTranscript(deviceID, transcript, source string) models.Transcript
	DrainTranscripts() []models.Transcript
}

// Service aggregates all sub-services behind one handle.
type Service struct {
	Gateway
	Control
	Monitoring
	EventLog
	Schedule
	Assistant
	Insights
	Voice
}

// Deps carries the shared infrastructure every sub-service draws from.
type Deps struct {
	Store         *state.Store
	Registry      *devices.Registry
	Router        *devices.Router
	Doors         devices.DoorTable
	Notifier      state.Notifier
	Interpreter   *assistant.Interpreter
	Ollama        *assistant.Client
	DefaultDevice string
	Log           *logger.Logger
}

// NewService wires the infrastructure layer into concrete services.
func NewService(d Deps) *Service {
	control := NewControlService(d.Store, d.Router, d.Doors, d.DefaultDevice, d.Log)
	monitoring := NewMonitoringService(d.Store, d.Registry)
	return &Service{
		Gateway:    NewGatewayService(d.Store, d.Registry, d.Doors, d.Notifier, d.Log),
		Control:    control,
		Monitoring: monitoring,
		EventLog:   NewEventLogService(d.Store),
		Schedule:   NewScheduleService(d.Store),
		Assistant:  NewAssistantService(control, monitoring, d.Interpreter, d.Ollama, d.Doors, d.Store, d.Log),
		Insights:   NewInsightsService(d.Store),
		Voice:      NewVoiceService(d.Store, d.Notifier, d.Log),
	}
}

// nowUTC is the single clock used across sub-services.
func nowUTC() time.Time { return time.Now().UTC() }
