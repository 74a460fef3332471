package models

import "time"

// TransportKind tells how a controller reaches the gateway.
type TransportKind string

const (
	TransportRawSocket   TransportKind = "raw-socket"
	TransportHTTPPolling TransportKind = "http-polling"
)

// Device is one known controller. Rows are never deleted; a device that
// drops its transport is only marked disconnected so last-seen survives.
type Device struct {
	ID           string        `json:"deviceId"`
	Transport    TransportKind `json:"socketType,omitempty"`
	IP           string        `json:"ip,omitempty"`
	RSSI         int           `json:"rssi,omitempty"`
	Version      string        `json:"version,omitempty"`
	Status       string        `json:"status,omitempty"`
	UptimeSec    int64         `json:"uptime,omitempty"`
	ArduinoReady bool          `json:"arduinoReady"`
	Connected    bool          `json:"connected"`
	LastSeen     time.Time     `json:"lastSeen"`
}
