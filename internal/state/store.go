// Package state owns the canonical in-memory system state. Every mutation
// goes through the Store, which serializes writers behind one mutex and
// notifies the broadcast hub only after a mutation has fully committed, so
// observers never see a torn state. Nothing here is persisted; the state
// resets on process restart.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
)

// Broadcast event names pushed to observers.
const (
	EvLights       = "lights-update"
	EvSensors      = "sensors-update"
	EvDoor         = "door-update"
	EvNewAlert     = "new-alert"
	EvNewEvent     = "new-event"
	EvAutoMode     = "auto-mode-changed"
	EvSecurityMode = "security-mode-changed"
	EvSchedule     = "schedule-updated"
)

// Log capacities.
const (
	historyCap = 1000
	alertCap   = 50
)

// Notifier receives a delta event after each committed mutation.
type Notifier interface {
	Broadcast(event string, payload any)
}

type note struct {
	event   string
	payload any
}

// Store is the single canonical state instance for the process lifetime.
type Store struct {
	mu       sync.Mutex
	notifier Notifier
	log      *logger.Logger

	doorIDs    []string
	lights     models.LightStates
	sensors    models.Sensors
	alerts     []models.Alert // newest first
	history    []models.HistoryEvent
	autoMode   bool
	schedule   []models.ScheduleRule
	stats      models.Statistics
	lastUpdate time.Time
}

// NewStore builds the store for the configured door layout.
func NewStore(doorIDs []string, log *logger.Logger) *Store {
	doors := make(map[string]models.DoorState, len(doorIDs))
	for _, id := range doorIDs {
		doors[id] = models.DoorState{}
	}
	ids := make([]string, len(doorIDs))
	copy(ids, doorIDs)
	return &Store{
		log:      log,
		doorIDs:  ids,
		autoMode: true,
		lights:   models.NewLightStates(),
		sensors: models.Sensors{
			Gas:         models.GasReading{Status: models.GasNormal},
			Temperature: models.TemperatureReading{Status: models.TempNormal},
			Doors:       doors,
		},
		stats: models.Statistics{StartedAt: time.Now().UTC()},
	}
}

// SetNotifier attaches the broadcast hub. Must be called before the first
// mutation; a nil notifier means mutations commit silently.
func (s *Store) SetNotifier(n Notifier) { s.notifier = n }

func (s *Store) emit(notes []note) {
	if s.notifier == nil {
		return
	}
	for _, n := range notes {
		s.notifier.Broadcast(n.event, n.payload)
	}
}

// ApplyLightChange sets one zone's light state. Unknown zones are ignored
// without any state change; the caller still records the raw message.
func (s *Store) ApplyLightChange(zone string, on bool, source string) {
	if !models.IsZone(zone) {
		return
	}
	now := time.Now().UTC()

	s.mu.Lock()
	previous := s.lights[zone]
	s.lights[zone] = on
	s.lastUpdate = now
	notes := []note{{EvLights, s.lights.Clone()}}
	notes = append(notes, s.appendHistoryLocked(models.HistoryEvent{
		Type:      models.EventLightChange,
		Timestamp: now,
		Source:    source,
		Meta:      map[string]any{"zone": zone, "state": on, "previousState": previous},
	}))
	s.mu.Unlock()

	s.emit(notes)
}

// ApplyAllLights switches every zone at once.
func (s *Store) ApplyAllLights(on bool) {
	s.mu.Lock()
	for z := range s.lights {
		s.lights[z] = on
	}
	s.lastUpdate = time.Now().UTC()
	notes := []note{{EvLights, s.lights.Clone()}}
	s.mu.Unlock()

	s.emit(notes)
}

// ApplySensorSnapshot commits a full positional sensor report. Motion is
// edge-triggered: a not-detected→detected transition while security mode is
// on appends a motion alert.
func (s *Store) ApplySensorSnapshot(sample models.SensorSample) {
	now := time.Now().UTC()

	s.mu.Lock()
	s.sensors.Gas = models.GasReading{
		Level:      sample.Gas,
		Status:     models.GasStatus(sample.Gas),
		LastUpdate: now,
	}
	s.sensors.Temperature = models.TemperatureReading{
		Value:      sample.Temperature,
		Status:     models.TemperatureStatus(sample.Temperature),
		LastUpdate: now,
	}

	var notes []note
	var motionAlert *models.Alert
	if sample.Motion && !s.sensors.Motion.Detected {
		s.sensors.Motion.LastDetection = now
		if s.sensors.Motion.SecurityMode {
			alert := models.Alert{
				ID:        uuid.NewString(),
				Type:      "MOVIMIENTO_DETECTADO",
				Value:     "Sensor PIR activado",
				Timestamp: now,
			}
			s.appendAlertLocked(alert)
			notes = append(notes, note{EvNewAlert, alert})
			motionAlert = &alert
		}
	}
	s.sensors.Motion.Detected = sample.Motion

	for i, id := range s.doorIDs {
		if i >= len(sample.Doors) {
			break
		}
		d := s.sensors.Doors[id]
		d.Open = sample.Doors[i]
		s.sensors.Doors[id] = d
	}

	s.lastUpdate = now
	notes = append(notes, note{EvSensors, s.sensors.Clone()})
	s.mu.Unlock()

	if motionAlert != nil {
		s.log.Infow("motion alert raised", "id", motionAlert.ID)
	}
	s.emit(notes)
}

// ApplyDoorChange sets one door's open state from an OK: acknowledgment.
// Doors outside the configured table are ignored.
func (s *Store) ApplyDoorChange(door string, open bool) {
	now := time.Now().UTC()

	s.mu.Lock()
	d, ok := s.sensors.Doors[door]
	if !ok {
		s.mu.Unlock()
		return
	}
	d.Open = open
	d.LastChange = now
	s.sensors.Doors[door] = d
	s.lastUpdate = now
	notes := []note{{EvDoor, map[string]any{"doorType": door, "open": open, "lastChange": now}}}
	s.mu.Unlock()

	s.emit(notes)
}

// AppendAlert adds an alert at the head of the list, evicting the oldest
// entry past capacity. ID and timestamp are filled when empty.
func (s *Store) AppendAlert(a models.Alert) models.Alert {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	s.appendAlertLocked(a)
	s.mu.Unlock()

	s.emit([]note{{EvNewAlert, a}})
	return a
}

func (s *Store) appendAlertLocked(a models.Alert) {
	s.alerts = append([]models.Alert{a}, s.alerts...)
	if len(s.alerts) > alertCap {
		s.alerts = s.alerts[:alertCap]
	}
}

// AppendHistory adds an event to the bounded history log (FIFO eviction).
func (s *Store) AppendHistory(e models.HistoryEvent) {
	s.mu.Lock()
	n := s.appendHistoryLocked(e)
	s.mu.Unlock()

	s.emit([]note{n})
}

func (s *Store) appendHistoryLocked(e models.HistoryEvent) note {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	s.history = append(s.history, e)
	if len(s.history) > historyCap {
		s.history = s.history[1:]
	}
	return note{EvNewEvent, e}
}

// SetAutoMode toggles the automation scheduler flag.
func (s *Store) SetAutoMode(enabled bool) {
	s.mu.Lock()
	s.autoMode = enabled
	s.mu.Unlock()

	s.emit([]note{{EvAutoMode, map[string]any{"enabled": enabled}}})
}

// SetSecurityMode toggles motion alerting.
func (s *Store) SetSecurityMode(enabled bool) {
	s.mu.Lock()
	s.sensors.Motion.SecurityMode = enabled
	s.mu.Unlock()

	s.emit([]note{{EvSecurityMode, map[string]any{"enabled": enabled}}})
}

// AddRule appends a schedule rule.
func (s *Store) AddRule(r models.ScheduleRule) {
	s.mu.Lock()
	s.schedule = append(s.schedule, r)
	rules := s.rulesLocked()
	s.mu.Unlock()

	s.emit([]note{{EvSchedule, rules}})
}

// RemoveRule removes a rule by id. Removing an unknown id is a no-op.
func (s *Store) RemoveRule(id string) {
	s.mu.Lock()
	kept := s.schedule[:0]
	for _, r := range s.schedule {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.schedule = kept
	rules := s.rulesLocked()
	s.mu.Unlock()

	s.emit([]note{{EvSchedule, rules}})
}

func (s *Store) rulesLocked() []models.ScheduleRule {
	out := make([]models.ScheduleRule, len(s.schedule))
	copy(out, s.schedule)
	return out
}

// Rules returns a copy of the schedule.
func (s *Store) Rules() []models.ScheduleRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rulesLocked()
}

// AutoMode reports the automation flag.
func (s *Store) AutoMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoMode
}

// CountCommand bumps the sent-command counter.
func (s *Store) CountCommand() {
	s.mu.Lock()
	s.stats.TotalCommands++
	s.mu.Unlock()
}

// CountEvent bumps the processed-event counter.
func (s *Store) CountEvent() {
	s.mu.Lock()
	s.stats.TotalEvents++
	s.mu.Unlock()
}

// Snapshot returns an immutable copy of the observable state. Devices are
// tracked by the connection registry and filled in by the caller.
func (s *Store) Snapshot() models.StatusSnapshot {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := make([]models.Alert, len(s.alerts))
	copy(alerts, s.alerts)
	return models.StatusSnapshot{
		Lights:       s.lights.Clone(),
		Sensors:      s.sensors.Clone(),
		Alerts:       alerts,
		LastUpdate:   s.lastUpdate,
		AutoMode:     s.autoMode,
		Statistics:   s.stats.View(now),
		HistoryCount: len(s.history),
	}
}

// History returns up to limit newest entries (oldest-first order preserved),
// optionally filtered by event type, plus the unfiltered total.
func (s *Store) History(limit int, eventType string) ([]models.HistoryEvent, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.history
	if eventType != "" {
		filtered := make([]models.HistoryEvent, 0, len(events))
		for _, e := range events {
			if e.Type == eventType {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]models.HistoryEvent, len(events))
	copy(out, events)
	return out, len(s.history)
}

// Alerts returns up to limit alerts, newest first.
func (s *Store) Alerts(limit int) []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := s.alerts
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	out := make([]models.Alert, len(alerts))
	copy(out, alerts)
	return out
}

// ClearHistory empties the history log.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	n := len(s.history)
	s.history = nil
	s.mu.Unlock()

	s.log.Infow("history cleared", "removed", n)
}

// ClearAlerts empties the alert list.
func (s *Store) ClearAlerts() {
	s.mu.Lock()
	n := len(s.alerts)
	s.alerts = nil
	s.mu.Unlock()

	s.log.Infow("alerts cleared", "removed", n)
}
