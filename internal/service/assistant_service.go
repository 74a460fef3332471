package service

import (
	"context"

	"smarthome_gateway/internal/assistant"
	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// AssistantService turns free text into executed actions: interpret,
// dispatch through the control layer, then render a reply against the
// state the interpretation saw.
type AssistantService struct {
	control     Control
	monitoring  Monitoring
	interpreter *assistant.Interpreter
	ollama      *assistant.Client
	renderer    assistant.Renderer
	doors       devices.DoorTable
	store       *state.Store
	log         *logger.Logger
}

func NewAssistantService(control Control, monitoring Monitoring, interpreter *assistant.Interpreter, ollama *assistant.Client, doors devices.DoorTable, store *state.Store, log *logger.Logger) *AssistantService {
	return &AssistantService{
		control:     control,
		monitoring:  monitoring,
		interpreter: interpreter,
		ollama:      ollama,
		renderer:    assistant.NewRenderer(doors),
		doors:       doors,
		store:       store,
		log:         log,
	}
}

// HandleMessage interprets one message and executes the resulting action.
// It always produces a reply; interpretation can degrade to the local
// matcher but never fails outright.
func (s *AssistantService) HandleMessage(ctx context.Context, text string) (models.Action, string) {
	snap := s.monitoring.Status()
	action := s.interpreter.Interpret(ctx, text, snap)

	switch action.Kind {
	case models.ActionCommand:
		sent, err := s.control.SendCommand(action.Command, "assistant")
		if err != nil {
			s.log.Warnw("assistant produced invalid command", "err", err)
			action = models.ErrorAction("No pude ejecutar ese comando.")
			break
		}
		s.store.AppendHistory(models.HistoryEvent{
			Type:      models.EventAssistantCommand,
			Timestamp: nowUTC(),
			Source:    "assistant",
			Meta: map[string]any{
				"text":    text,
				"command": action.Command,
				"sent":    sent,
			},
		})
	case models.ActionDoor:
		letter, _ := action.Command.Letter()
		sent := false
		if doorID, doorAction, ok := s.doors.Resolve(letter); ok {
			_, sent, _ = s.control.SendDoorCommand(doorID, doorAction, "assistant")
		}
		s.store.AppendHistory(models.HistoryEvent{
			Type:      models.EventAssistantDoor,
			Timestamp: nowUTC(),
			Source:    "assistant",
			Meta: map[string]any{
				"text":    text,
				"door":    action.Door,
				"command": action.Command,
				"sent":    sent,
			},
		})
	}

	return action, s.renderer.Render(action, snap)
}

// Availability probes the external interpreter.
func (s *AssistantService) Availability(ctx context.Context) models.AssistantStatus {
	return s.ollama.Status(ctx)
}
