package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
)

// systemPrompt constrains the external interpreter to emit exactly one of
// the five action shapes as a single JSON object.
const systemPrompt = `Eres un asistente virtual de una casa inteligente IoT. Tu trabajo es interpretar comandos en lenguaje natural y convertirlos en acciones específicas.

COMANDOS DISPONIBLES:
- Luces individuales: 1-16 (números pares apagan, impares encienden)
  * Exteriores: ON=1, OFF=2
  * Sala/Comedor: ON=3, OFF=4
  * Cochera: ON=5, OFF=6
  * Cocina: ON=7, OFF=8
  * Cuarto: ON=9, OFF=10
  * Baño: ON=11, OFF=12
  * Pasadizo: ON=13, OFF=14
  * Lavandería: ON=15, OFF=16
- Todas las luces: ON=17, OFF=18
- Puertas: letras de comando (ej. principal A=abrir C=cerrar)

SENSORES DISPONIBLES: temperature, gas, motion, door

REGLAS:
1. Responde SOLO con un JSON válido
2. Para encender/apagar luces: {"action": "command", "command": NÚMERO}
3. Para información de sensores: {"action": "query", "sensor": "NOMBRE"}
4. Para abrir/cerrar puertas: {"action": "door", "command": "LETRA"}
5. Para conversación general: {"action": "chat", "response": "tu respuesta"}
6. NUNCA incluyas explicaciones fuera del JSON`

// Generator is the external completion call the interpreter depends on.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Interpreter resolves free text into an action, delegating to the
// external service and falling back to the local matcher on any failure.
type Interpreter struct {
	client  Generator
	matcher Matcher
	doors   devices.DoorTable
	timeout time.Duration
	log     *logger.Logger
}

// NewInterpreter wires the external client and the local matcher.
func NewInterpreter(client Generator, doors devices.DoorTable, timeout time.Duration, log *logger.Logger) *Interpreter {
	return &Interpreter{
		client:  client,
		matcher: NewMatcher(doors),
		doors:   doors,
		timeout: timeout,
		log:     log,
	}
}

// Interpret turns text into exactly one action. The external call is
// bounded by the configured timeout; error, timeout, and malformed output
// all route to the deterministic fallback, never to the caller.
func (i *Interpreter) Interpret(ctx context.Context, text string, snap models.StatusSnapshot) models.Action {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	raw, err := i.client.Generate(ctx, systemPrompt, contextPrompt(text, snap))
	if err != nil {
		i.log.Infow("interpreter unavailable, using local fallback", "err", err)
		return i.matcher.Match(text)
	}

	action, err := ParseAction(raw)
	if err != nil {
		i.log.Infow("interpreter output unusable, using local fallback", "err", err)
		return i.matcher.match(text, strings.TrimSpace(raw))
	}

	if action.Kind == models.ActionDoor {
		letter, _ := action.Command.Letter()
		door, _, ok := i.doors.Resolve(letter)
		if !ok {
			i.log.Infow("interpreter returned unknown door letter, using local fallback", "letter", letter)
			return i.matcher.match(text, strings.TrimSpace(raw))
		}
		action.Door = door
	}
	return action
}

// contextPrompt embeds a readable summary of the current state so the
// external service can answer questions about it.
func contextPrompt(text string, snap models.StatusSnapshot) string {
	on := strings.Join(snap.Lights.On(), ", ")
	if on == "" {
		on = "ninguna"
	}

	var doors []string
	for id, d := range snap.Sensors.Doors {
		state := "CERRADA"
		if d.Open {
			state = "ABIERTA"
		}
		doors = append(doors, fmt.Sprintf("%s %s", id, state))
	}

	motion := "NO"
	if snap.Sensors.Motion.Detected {
		motion = "SÍ"
	}

	return fmt.Sprintf(`Estado actual del sistema:
- Luces encendidas: %s
- Temperatura: %.1f°C
- Gas: nivel %d (%s)
- Movimiento detectado: %s
- Puertas: %s

Usuario: %s`,
		on,
		snap.Sensors.Temperature.Value,
		snap.Sensors.Gas.Level,
		snap.Sensors.Gas.Status,
		motion,
		strings.Join(doors, ", "),
		text,
	)
}
