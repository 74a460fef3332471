package models

import "time"

// Alert is a controller-raised or motion-triggered alert.
// The alert list is newest-first and capped at 50 entries.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// History event types.
const (
	EventArduinoMessage     = "arduino_message"
	EventLightChange        = "light_change"
	EventCommandSent        = "command_sent"
	EventDoorCommand        = "door_command"
	EventScheduledCommand   = "scheduled_command"
	EventAssistantCommand   = "assistant_command"
	EventAssistantDoor      = "assistant_door"
	EventSecurityModeChange = "security_mode_change"
	EventVoiceTranscript    = "voice_transcript"
)

// HistoryEvent is one entry of the bounded history log (oldest-first,
// capped at 1000, FIFO eviction). Type-specific fields live in Meta.
type HistoryEvent struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	DeviceID  string         `json:"deviceId,omitempty"`
	Source    string         `json:"source,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// Statistics are the running process counters.
type Statistics struct {
	TotalCommands int64     `json:"totalCommands"`
	TotalEvents   int64     `json:"totalEvents"`
	StartedAt     time.Time `json:"uptime"`
}

// StatisticsView adds the derived uptime to the counters for API responses.
type StatisticsView struct {
	Statistics
	UptimeSeconds int64 `json:"uptimeSeconds"`
}

// View derives the API representation at time now.
func (s Statistics) View(now time.Time) StatisticsView {
	return StatisticsView{
		Statistics:    s,
		UptimeSeconds: int64(now.Sub(s.StartedAt).Seconds()),
	}
}
