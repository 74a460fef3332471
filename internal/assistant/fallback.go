package assistant

import (
	"strings"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/models"
)

const chatDidNotUnderstand = "No entendí tu solicitud. ¿Puedes reformularla?"

// diacritics folds the accented characters that show up in Spanish commands.
var diacritics = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"¿", "", "¡", "",
)

// normalize case-folds and strips diacritics so rule keywords match
// regardless of how the text was typed or transcribed.
func normalize(text string) string {
	return diacritics.Replace(strings.ToLower(text))
}

var (
	onVerbs    = []string{"enciende", "encienda", "encender", "prende", "prenda", "prender", "activa", "activar", "ilumina"}
	offVerbs   = []string{"apaga", "apague", "apagar", "desactiva", "desconecta"}
	openVerbs  = []string{"abre", "abra", "abrir"}
	closeVerbs = []string{"cierra", "cierre", "cerrar"}
)

// zoneKeywords maps normalized keywords to zone ids, tested in order.
var zoneKeywords = []struct {
	keyword string
	zone    string
}{
	{"exterior", models.ZoneExteriores},
	{"afuera", models.ZoneExteriores},
	{"patio", models.ZoneExteriores},
	{"sala", models.ZoneSalaComedor},
	{"comedor", models.ZoneSalaComedor},
	{"cochera", models.ZoneCochera},
	{"garaje", models.ZoneCochera},
	{"garage", models.ZoneCochera},
	{"cocina", models.ZoneCocina},
	{"cuarto", models.ZoneCuarto},
	{"dormitorio", models.ZoneCuarto},
	{"habitacion", models.ZoneCuarto},
	{"recamara", models.ZoneCuarto},
	{"bano", models.ZoneBanio},
	{"banio", models.ZoneBanio},
	{"pasadizo", models.ZonePasadizo},
	{"pasillo", models.ZonePasadizo},
	{"lavanderia", models.ZoneLavanderia},
}

// doorKeywords maps normalized keywords to door ids, tested in order.
var doorKeywords = []struct {
	keyword string
	door    string
}{
	{"principal", "main"},
	{"entrada", "main"},
	{"cochera", "garage"},
	{"garaje", "garage"},
	{"garage", "garage"},
}

// Matcher is the deterministic local interpreter. Rule order is
// significant: light on/off rules run before door rules, door rules before
// sensor queries, sensor queries before the chat fallback. The first
// matching rule wins. Match is a pure function of its input for a fixed
// door table.
type Matcher struct {
	doors devices.DoorTable
}

// NewMatcher builds a matcher over the configured door table.
func NewMatcher(doors devices.DoorTable) Matcher {
	return Matcher{doors: doors}
}

// Match interprets text locally without the external service.
func (m Matcher) Match(text string) models.Action {
	return m.match(text, "")
}

// match runs the rule list. rawReply, when non-empty, is the external
// service's raw text and is echoed by the chat fallback.
func (m Matcher) match(text, rawReply string) models.Action {
	t := normalize(text)

	if hasVerb(t, onVerbs) {
		if zone, ok := findZone(t); ok {
			code, _ := models.ZoneOnCode(zone)
			return models.CommandAction(code)
		}
		return models.CommandAction(models.AllLightsOnCode)
	}

	if hasVerb(t, offVerbs) {
		if zone, ok := findZone(t); ok {
			code, _ := models.ZoneOffCode(zone)
			return models.CommandAction(code)
		}
		return models.CommandAction(models.AllLightsOffCode)
	}

	if hasVerb(t, openVerbs) {
		return m.doorAction(t, devices.DoorOpen)
	}
	if hasVerb(t, closeVerbs) {
		return m.doorAction(t, devices.DoorClose)
	}

	switch {
	case strings.Contains(t, "temperatura") || strings.Contains(t, "grados") || strings.Contains(t, "calor"):
		return models.QueryAction(models.SensorTemperature)
	case strings.Contains(t, "gas") || strings.Contains(t, "humo"):
		return models.QueryAction(models.SensorGas)
	case strings.Contains(t, "movimiento") || strings.Contains(t, "alguien"):
		return models.QueryAction(models.SensorMotion)
	case strings.Contains(t, "puerta"):
		return models.QueryAction(models.SensorDoor)
	}

	if rawReply != "" {
		return models.ChatAction(rawReply)
	}
	return models.ChatAction(chatDidNotUnderstand)
}

// doorAction resolves the target door keyword, defaulting to the primary
// door when no keyword matches or the keyword names an unconfigured door.
func (m Matcher) doorAction(t, action string) models.Action {
	doorID := m.doors.Primary()
	for _, k := range doorKeywords {
		if strings.Contains(t, k.keyword) && m.doors.Has(k.door) {
			doorID = k.door
			break
		}
	}
	cmd, err := m.doors.Command(doorID, action)
	if err != nil {
		return models.ErrorAction(err.Error())
	}
	letter, _ := cmd.Letter()
	return models.DoorAction(letter, doorID)
}

// hasVerb matches verbs on whole words only. Substring matching would
// misread "desactiva" as its on-verb substring "activa".
func hasVerb(t string, verbs []string) bool {
	for _, field := range strings.Fields(t) {
		field = strings.Trim(field, ",.;:!?")
		for _, v := range verbs {
			if field == v {
				return true
			}
		}
	}
	return false
}

func findZone(t string) (string, bool) {
	for _, k := range zoneKeywords {
		if strings.Contains(t, k.keyword) {
			return k.zone, true
		}
	}
	return "", false
}
