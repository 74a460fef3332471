package service

import (
	"github.com/google/uuid"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/protocol"
	"smarthome_gateway/internal/state"
)

// GatewayService ingests controller traffic: every raw line is decoded,
// applied to the state store, and recorded in the history log.
type GatewayService struct {
	store    *state.Store
	registry *devices.Registry
	decoder  *protocol.Decoder
	notifier state.Notifier
	log      *logger.Logger
}

func NewGatewayService(store *state.Store, registry *devices.Registry, doors devices.DoorTable, notifier state.Notifier, log *logger.Logger) *GatewayService {
	return &GatewayService{
		store:    store,
		registry: registry,
		decoder:  protocol.NewDecoder(doors.IDs()),
		notifier: notifier,
		log:      log,
	}
}

// ProcessDeviceLine handles one raw protocol line from a connected
// controller. Every line, recognized or not, is broadcast verbatim and
// recorded; decoded events additionally mutate the state store.
func (s *GatewayService) ProcessDeviceLine(deviceID, line string) {
	now := nowUTC()
	s.notifier.Broadcast("arduino-message", map[string]any{
		"deviceId":  deviceID,
		"message":   line,
		"timestamp": now,
	})

	switch ev := s.decoder.Decode(line).(type) {
	case protocol.LightAck:
		s.store.ApplyLightChange(ev.Zone, ev.On, "arduino")
	case protocol.AllLights:
		s.store.ApplyAllLights(ev.On)
	case protocol.SensorSnapshot:
		s.store.ApplySensorSnapshot(ev.Sample)
	case protocol.DoorAck:
		s.store.ApplyDoorChange(ev.Door, ev.Open)
	case protocol.Alert:
		s.store.AppendAlert(models.Alert{
			ID:        uuid.NewString(),
			Type:      ev.Type,
			Value:     ev.Value,
			Timestamp: now,
		})
	case protocol.Ready:
		s.registry.SetReady(deviceID, true)
		s.notifier.Broadcast("system-status", map[string]any{
			"deviceId":     deviceID,
			"arduinoReady": true,
		})
		s.log.Infow("controller ready", "device", deviceID)
	case protocol.Raw:
		s.log.Debugw("unrecognized controller line", "device", deviceID, "line", line)
	}

	s.store.AppendHistory(models.HistoryEvent{
		Type:      models.EventArduinoMessage,
		Timestamp: now,
		DeviceID:  deviceID,
		Meta:      map[string]any{"message": line},
	})
	s.store.CountEvent()
	s.registry.Heartbeat(deviceID)
}

// IdentifyDevice binds a live raw-socket connection to a device id and
// announces the connection to dashboards.
func (s *GatewayService) IdentifyDevice(deviceID string, conn devices.Connection) {
	s.registry.Identify(deviceID, conn)
	s.notifier.Broadcast("esp32-connected", map[string]any{
		"deviceId":  deviceID,
		"timestamp": nowUTC(),
	})
	s.notifier.Broadcast("esp32-devices", s.registry.Devices())
}

// RegisterDevice upserts device metadata from the HTTP registration
// endpoint. A registration refreshing a recent one updates the row quietly;
// a new or stale one is announced to dashboards.
func (s *GatewayService) RegisterDevice(meta models.Device) {
	refresh := s.registry.Register(meta)
	if refresh {
		return
	}
	s.notifier.Broadcast("esp32-registered", map[string]any{
		"deviceId":  meta.ID,
		"ip":        meta.IP,
		"rssi":      meta.RSSI,
		"version":   meta.Version,
		"timestamp": nowUTC(),
	})
}

// UpdateDeviceStatus merges a periodic status report into the device row.
func (s *GatewayService) UpdateDeviceStatus(meta models.Device) {
	s.registry.UpdateStatus(meta)
	s.notifier.Broadcast("esp32-devices", s.registry.Devices())
}

// Heartbeat refreshes a device's last-seen time.
func (s *GatewayService) Heartbeat(deviceID string) {
	s.registry.Heartbeat(deviceID)
}

// MarkDisconnected records a transport loss. The device row survives.
func (s *GatewayService) MarkDisconnected(deviceID string) {
	s.registry.Drop(deviceID)
	s.notifier.Broadcast("esp32-devices", s.registry.Devices())
}
