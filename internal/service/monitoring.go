package service

import (
	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// statusAlertLimit caps the alerts embedded in the composed status; the
// full list stays reachable through the alerts endpoint.
const statusAlertLimit = 10

// MonitoringService composes the read-only status view from the state
// store and the device registry.
type MonitoringService struct {
	store    *state.Store
	registry *devices.Registry
}

func NewMonitoringService(store *state.Store, registry *devices.Registry) *MonitoringService {
	return &MonitoringService{store: store, registry: registry}
}

// Status returns the full observable system state: lights, sensors, the
// newest alerts, counters, and every known device.
func (s *MonitoringService) Status() models.StatusSnapshot {
	snap := s.store.Snapshot()
	snap.Devices = s.registry.Devices()
	if len(snap.Alerts) > statusAlertLimit {
		snap.Alerts = snap.Alerts[:statusAlertLimit]
	}
	return snap
}
