package assistant

import (
	"fmt"
	"sort"
	"strings"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/models"
)

// zoneLabels are the human-readable Spanish names used in confirmations.
var zoneLabels = map[string]string{
	models.ZoneExteriores:  "exteriores",
	models.ZoneSalaComedor: "de la sala",
	models.ZoneCochera:     "de la cochera",
	models.ZoneCocina:      "de la cocina",
	models.ZoneCuarto:      "del cuarto",
	models.ZoneBanio:       "del baño",
	models.ZonePasadizo:    "del pasadizo",
	models.ZoneLavanderia:  "de la lavandería",
}

var doorLabels = map[string]string{
	"main":   "principal",
	"garage": "de la cochera",
}

const genericAck = "Comando ejecutado correctamente."

// Renderer turns an executed action plus the current state into the
// Spanish confirmation text returned to the user.
type Renderer struct {
	doors devices.DoorTable
}

// NewRenderer builds a renderer over the configured door table.
func NewRenderer(doors devices.DoorTable) Renderer {
	return Renderer{doors: doors}
}

// Render produces the reply for one action. Query actions read from the
// snapshot; command and door actions render pure confirmations.
func (r Renderer) Render(action models.Action, snap models.StatusSnapshot) string {
	switch action.Kind {
	case models.ActionCommand:
		code, _ := action.Command.Num()
		return renderCommand(code)
	case models.ActionDoor:
		return r.renderDoor(action)
	case models.ActionQuery:
		return renderQuery(action.Sensor, snap)
	case models.ActionChat, models.ActionError:
		if action.Response != "" {
			return action.Response
		}
	}
	return genericAck
}

func renderCommand(code int) string {
	switch code {
	case models.AllLightsOnCode:
		return "Encendiendo todas las luces."
	case models.AllLightsOffCode:
		return "Apagando todas las luces."
	}
	zone, on, ok := models.ZoneForCode(code)
	if !ok {
		return genericAck
	}
	label, found := zoneLabels[zone]
	if !found {
		label = zone
	}
	if on {
		return fmt.Sprintf("Encendiendo luces %s.", label)
	}
	return fmt.Sprintf("Apagando luces %s.", label)
}

func (r Renderer) renderDoor(action models.Action) string {
	letter, _ := action.Command.Letter()
	doorID, doorAction, ok := r.doors.Resolve(letter)
	if !ok {
		doorID = action.Door
		doorAction = devices.DoorOpen
	}
	label, found := doorLabels[doorID]
	if !found {
		label = doorID
	}
	if doorAction == devices.DoorOpen {
		return fmt.Sprintf("Abriendo puerta %s.", label)
	}
	return fmt.Sprintf("Cerrando puerta %s.", label)
}

func renderQuery(sensor string, snap models.StatusSnapshot) string {
	switch sensor {
	case models.SensorTemperature:
		return fmt.Sprintf("La temperatura actual es %.1f°C (%s).",
			snap.Sensors.Temperature.Value, snap.Sensors.Temperature.Status)
	case models.SensorGas:
		return fmt.Sprintf("El nivel de gas es %d (%s).",
			snap.Sensors.Gas.Level, snap.Sensors.Gas.Status)
	case models.SensorMotion:
		if snap.Sensors.Motion.Detected {
			return "Se ha detectado movimiento."
		}
		return "No hay movimiento detectado."
	case models.SensorDoor:
		var parts []string
		for _, id := range doorOrder(snap) {
			state := "cerrada"
			if snap.Sensors.Doors[id].Open {
				state = "abierta"
			}
			label, found := doorLabels[id]
			if !found {
				label = id
			}
			parts = append(parts, fmt.Sprintf("la puerta %s está %s", label, state))
		}
		if len(parts) == 0 {
			return "No hay puertas configuradas."
		}
		return strings.Join(parts, ", ") + "."
	}
	return genericAck
}

// doorOrder yields snapshot door ids in a stable order: main first, then
// the rest alphabetically.
func doorOrder(snap models.StatusSnapshot) []string {
	var rest []string
	hasMain := false
	for id := range snap.Sensors.Doors {
		if id == "main" {
			hasMain = true
			continue
		}
		rest = append(rest, id)
	}
	sort.Strings(rest)
	if hasMain {
		return append([]string{"main"}, rest...)
	}
	return rest
}
