package models

import "time"

// StatusSnapshot is an immutable copy of the observable system state.
// Readers (dashboards, the assistant context builder) work on snapshots;
// later mutations never show through.
type StatusSnapshot struct {
	Devices      map[string]Device `json:"esp32Devices"`
	Lights       LightStates       `json:"lights"`
	Sensors      Sensors           `json:"sensors"`
	Alerts       []Alert           `json:"alerts"`
	LastUpdate   time.Time         `json:"lastUpdate"`
	AutoMode     bool              `json:"autoMode"`
	Statistics   StatisticsView    `json:"statistics"`
	HistoryCount int               `json:"historyCount"`
}

// Transcript is one queued voice transcript awaiting pickup.
type Transcript struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	Transcript string    `json:"transcript"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
}

// AssistantStatus reports external interpreter reachability.
type AssistantStatus struct {
	Available bool     `json:"available"`
	Models    []string `json:"models,omitempty"`
	Error     string   `json:"error,omitempty"`
}
