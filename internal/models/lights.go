package models

// Zone ids form a closed set; there is no dynamic zone creation.
const (
	ZoneExteriores  = "exteriores"
	ZoneSalaComedor = "salaComedor"
	ZoneCochera     = "cochera"
	ZoneCocina      = "cocina"
	ZoneCuarto      = "cuarto"
	ZoneBanio       = "banio"
	ZonePasadizo    = "pasadizo"
	ZoneLavanderia  = "lavanderia"
)

// zoneOrder fixes both the set of zones and the zone→command-code mapping:
// zone i uses codes 2i+1 (on) and 2i+2 (off).
var zoneOrder = []string{
	ZoneExteriores,
	ZoneSalaComedor,
	ZoneCochera,
	ZoneCocina,
	ZoneCuarto,
	ZoneBanio,
	ZonePasadizo,
	ZoneLavanderia,
}

// All-lights command codes.
const (
	AllLightsOnCode  = 17
	AllLightsOffCode = 18
)

// Zones returns the closed zone id list in command-code order.
func Zones() []string {
	out := make([]string, len(zoneOrder))
	copy(out, zoneOrder)
	return out
}

// IsZone reports whether id is a known zone.
func IsZone(id string) bool {
	for _, z := range zoneOrder {
		if z == id {
			return true
		}
	}
	return false
}

// ZoneOnCode returns the command code that switches the zone on.
func ZoneOnCode(zone string) (int, bool) {
	for i, z := range zoneOrder {
		if z == zone {
			return 2*i + 1, true
		}
	}
	return 0, false
}

// ZoneOffCode returns the command code that switches the zone off.
func ZoneOffCode(zone string) (int, bool) {
	on, ok := ZoneOnCode(zone)
	if !ok {
		return 0, false
	}
	return on + 1, true
}

// ZoneForCode maps a light command code 1..16 back to its zone and state.
func ZoneForCode(code int) (zone string, on bool, ok bool) {
	if code < 1 || code > 2*len(zoneOrder) {
		return "", false, false
	}
	idx := (code - 1) / 2
	return zoneOrder[idx], code%2 == 1, true
}

// LightStates maps zone id → light on.
type LightStates map[string]bool

// NewLightStates returns every zone switched off.
func NewLightStates() LightStates {
	ls := make(LightStates, len(zoneOrder))
	for _, z := range zoneOrder {
		ls[z] = false
	}
	return ls
}

// Clone returns an independent copy.
func (ls LightStates) Clone() LightStates {
	out := make(LightStates, len(ls))
	for k, v := range ls {
		out[k] = v
	}
	return out
}

// AnyOn reports whether at least one light is on.
func (ls LightStates) AnyOn() bool {
	for _, v := range ls {
		if v {
			return true
		}
	}
	return false
}

// On lists the zones currently switched on, in command-code order.
func (ls LightStates) On() []string {
	var out []string
	for _, z := range zoneOrder {
		if ls[z] {
			out = append(out, z)
		}
	}
	return out
}
