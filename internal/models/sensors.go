package models

import "time"

// Gas level statuses, derived from the raw MQ-6 reading.
const (
	GasNormal   = "normal"
	GasLow      = "bajo"
	GasMedium   = "medio"
	GasHigh     = "alto"
	GasCritical = "critico"
)

// Temperature statuses.
const (
	TempNormal = "normal"
	TempHigh   = "alta"
)

// GasStatus derives the status bucket from a raw level. Each threshold
// value belongs to the higher-severity bucket (exactly 50 is "bajo").
func GasStatus(level int) string {
	switch {
	case level < 50:
		return GasNormal
	case level < 150:
		return GasLow
	case level < 250:
		return GasMedium
	case level < 400:
		return GasHigh
	default:
		return GasCritical
	}
}

// TemperatureStatus derives the status from a reading in °C.
func TemperatureStatus(value float64) string {
	if value >= 25 {
		return TempHigh
	}
	return TempNormal
}

// GasReading is the gas sensor snapshot. Status is always recomputable
// from Level; it is never set directly.
type GasReading struct {
	Level      int       `json:"level"`
	Status     string    `json:"status"`
	LastUpdate time.Time `json:"lastUpdate"`
}

type TemperatureReading struct {
	Value      float64   `json:"value"`
	Status     string    `json:"status"`
	LastUpdate time.Time `json:"lastUpdate"`
}

type MotionState struct {
	Detected      bool      `json:"detected"`
	LastDetection time.Time `json:"lastDetection"`
	SecurityMode  bool      `json:"securityMode"`
}

type DoorState struct {
	Open       bool      `json:"open"`
	LastChange time.Time `json:"lastChange"`
}

// Sensors is the full sensor sub-state. Doors is keyed by configured door id.
type Sensors struct {
	Gas         GasReading           `json:"gas"`
	Temperature TemperatureReading   `json:"temperature"`
	Motion      MotionState          `json:"motion"`
	Doors       map[string]DoorState `json:"doors"`
}

// Clone returns an independent copy.
func (s Sensors) Clone() Sensors {
	out := s
	out.Doors = make(map[string]DoorState, len(s.Doors))
	for k, v := range s.Doors {
		out.Doors[k] = v
	}
	return out
}

// SensorSample is one decoded SENSORS line: raw values in wire order.
// Doors holds one open flag per configured door, positionally.
type SensorSample struct {
	Gas         int
	Temperature float64
	Motion      bool
	Doors       []bool
}
