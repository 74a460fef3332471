package service

import (
	"fmt"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// ControlService dispatches outbound commands to the default controller
// and owns the mode toggles. Dispatch is fire-and-forget: a command to a
// disconnected device is counted and logged but reports sent=false.
type ControlService struct {
	store         *state.Store
	router        *devices.Router
	doors         devices.DoorTable
	defaultDevice string
	log           *logger.Logger
}

func NewControlService(store *state.Store, router *devices.Router, doors devices.DoorTable, defaultDevice string, log *logger.Logger) *ControlService {
	return &ControlService{
		store:         store,
		router:        router,
		doors:         doors,
		defaultDevice: defaultDevice,
		log:           log,
	}
}

// SendCommand validates and dispatches one command code. The command
// counter advances whether or not the frame reaches a device; light state
// only changes later, on the controller's acknowledgment.
func (s *ControlService) SendCommand(cmd models.Command, source string) (bool, error) {
	if err := validateCommand(cmd, s.doors); err != nil {
		return false, err
	}
	sent := s.router.Send(s.defaultDevice, cmd)
	s.store.CountCommand()
	s.store.AppendHistory(models.HistoryEvent{
		Type:      models.EventCommandSent,
		Timestamp: nowUTC(),
		DeviceID:  s.defaultDevice,
		Source:    source,
		Meta: map[string]any{
			"command": cmd,
			"sent":    sent,
		},
	})
	return sent, nil
}

// SendDoorCommand resolves a door id and action to its command letter and
// dispatches it.
func (s *ControlService) SendDoorCommand(doorID, action, source string) (models.Command, bool, error) {
	cmd, err := s.doors.Command(doorID, action)
	if err != nil {
		return models.Command{}, false, err
	}
	sent := s.router.Send(s.defaultDevice, cmd)
	s.store.CountCommand()
	s.store.AppendHistory(models.HistoryEvent{
		Type:      models.EventDoorCommand,
		Timestamp: nowUTC(),
		DeviceID:  s.defaultDevice,
		Source:    source,
		Meta: map[string]any{
			"door":    doorID,
			"action":  action,
			"command": cmd,
			"sent":    sent,
		},
	})
	return cmd, sent, nil
}

// SetAutoMode toggles the automation scheduler.
func (s *ControlService) SetAutoMode(enabled bool) {
	s.store.SetAutoMode(enabled)
	s.log.Infow("auto mode changed", "enabled", enabled)
}

// SetSecurityMode toggles motion alerting and records the change.
func (s *ControlService) SetSecurityMode(enabled bool) {
	s.store.SetSecurityMode(enabled)
	s.store.AppendHistory(models.HistoryEvent{
		Type:      models.EventSecurityModeChange,
		Timestamp: nowUTC(),
		Meta:      map[string]any{"enabled": enabled},
	})
	s.log.Infow("security mode changed", "enabled", enabled)
}

// validateCommand accepts light codes 1..18 and configured door letters.
func validateCommand(cmd models.Command, doors devices.DoorTable) error {
	if n, ok := cmd.Num(); ok {
		if n >= 1 && n <= models.AllLightsOffCode {
			return nil
		}
		return fmt.Errorf("command code %d out of range", n)
	}
	if letter, ok := cmd.Letter(); ok {
		if _, _, found := doors.Resolve(letter); found {
			return nil
		}
		return fmt.Errorf("unknown door letter %q", letter)
	}
	return fmt.Errorf("empty command")
}
