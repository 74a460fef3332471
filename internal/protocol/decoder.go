// Package protocol decodes the controller's line protocol into typed events.
//
// One message per line, ASCII, prefix-dispatched:
//
//	OK:<ZONE>:<ON|OFF>
//	OK:TODAS_ENCENDIDAS / OK:TODAS_APAGADAS
//	SENSORS:<gas>,<temp>,<motion>,<door1>[,<door2>...]
//	ALERT:<type>:<value...>
//	ARDUINO:READY
//
// Decoding never fails: malformed numeric fields fall back to zero, and
// anything unrecognized decodes as Raw so the caller can still record it
// as a generic message.
package protocol

import (
	"strconv"
	"strings"

	"smarthome_gateway/internal/models"
)

// Event is a decoded controller message.
type Event interface{ isEvent() }

// LightAck acknowledges a single zone switch. Zone is the canonical zone id
// when known, otherwise the raw wire name (the store ignores unknown zones).
type LightAck struct {
	Zone string
	On   bool
}

// AllLights acknowledges an all-on or all-off command.
type AllLights struct{ On bool }

// DoorAck reports a door open/close through the OK: grammar.
type DoorAck struct {
	Door string
	Open bool
}

// SensorSnapshot is a full positional sensor report.
type SensorSnapshot struct{ Sample models.SensorSample }

// Alert is a controller-raised alert.
type Alert struct {
	Type  string
	Value string
}

// Ready is the controller's readiness signal.
type Ready struct{}

// Raw is any line that did not decode into a specific event.
type Raw struct{}

func (LightAck) isEvent()       {}
func (AllLights) isEvent()      {}
func (DoorAck) isEvent()        {}
func (SensorSnapshot) isEvent() {}
func (Alert) isEvent()          {}
func (Ready) isEvent()          {}
func (Raw) isEvent()            {}

// zoneNames maps wire zone names to canonical zone ids.
var zoneNames = map[string]string{
	"Exteriores":  models.ZoneExteriores,
	"SalaComedor": models.ZoneSalaComedor,
	"Cochera":     models.ZoneCochera,
	"Cocina":      models.ZoneCocina,
	"Cuarto":      models.ZoneCuarto,
	"Banio":       models.ZoneBanio,
	"Pasadizo":    models.ZonePasadizo,
	"Lavanderia":  models.ZoneLavanderia,
}

// doorNames maps the special OK: zone names onto door ids.
var doorNames = map[string]string{
	"PUERTA_PRINCIPAL": "main",
	"DOOR_MAIN":        "main",
	"PUERTA_COCHERA":   "garage",
	"DOOR_GARAGE":      "garage",
}

// Decoder parses controller lines. Doors fixes how many positional door
// fields a SENSORS line must carry and which door each position feeds.
type Decoder struct {
	doors []string
}

// NewDecoder returns a decoder for the configured door layout.
func NewDecoder(doorIDs []string) *Decoder {
	doors := make([]string, len(doorIDs))
	copy(doors, doorIDs)
	return &Decoder{doors: doors}
}

// Decode parses one line into an event. It never returns an error.
func (d *Decoder) Decode(line string) Event {
	switch {
	case line == "OK:TODAS_ENCENDIDAS":
		return AllLights{On: true}
	case line == "OK:TODAS_APAGADAS":
		return AllLights{On: false}
	case line == "ARDUINO:READY":
		return Ready{}
	case strings.HasPrefix(line, "OK:"):
		return d.decodeAck(line)
	case strings.HasPrefix(line, "SENSORS:"):
		return d.decodeSensors(strings.TrimPrefix(line, "SENSORS:"))
	case strings.HasPrefix(line, "ALERT:"):
		return decodeAlert(strings.TrimPrefix(line, "ALERT:"))
	default:
		return Raw{}
	}
}

func (d *Decoder) decodeAck(line string) Event {
	parts := strings.Split(line, ":")
	if len(parts) < 3 {
		return Raw{}
	}
	zone := parts[1]
	on := parts[2] == "ON"

	if door, ok := doorNames[zone]; ok {
		return DoorAck{Door: door, Open: on}
	}
	if canonical, ok := zoneNames[zone]; ok {
		zone = canonical
	}
	return LightAck{Zone: zone, On: on}
}

// decodeSensors parses the positional fields. Lines carrying fewer fields
// than the configured layout are dropped whole rather than applied
// partially, so a broadcast never sees a half-updated snapshot.
func (d *Decoder) decodeSensors(payload string) Event {
	fields := strings.Split(payload, ",")
	if len(fields) < 3+len(d.doors) {
		return Raw{}
	}
	sample := models.SensorSample{
		Gas:         atoiOrZero(fields[0]),
		Temperature: atofOrZero(fields[1]),
		Motion:      fields[2] == "1",
		Doors:       make([]bool, len(d.doors)),
	}
	for i := range d.doors {
		sample.Doors[i] = fields[3+i] == "1"
	}
	return SensorSnapshot{Sample: sample}
}

// decodeAlert splits "type:value", rejoining any colons inside the value.
func decodeAlert(payload string) Event {
	parts := strings.SplitN(payload, ":", 2)
	a := Alert{Type: parts[0]}
	if len(parts) == 2 {
		a.Value = parts[1]
	}
	return a
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
