package service

import (
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// defaultHistoryLimit bounds history responses when the caller gives no
// explicit limit.
const defaultHistoryLimit = 100

// EventLogService exposes the bounded in-memory logs.
type EventLogService struct {
	store *state.Store
}

func NewEventLogService(store *state.Store) *EventLogService {
	return &EventLogService{store: store}
}

// History returns up to limit newest history entries, optionally filtered
// by event type, plus the unfiltered total.
func (s *EventLogService) History(limit int, eventType string) ([]models.HistoryEvent, int) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.History(limit, eventType)
}

// Alerts returns up to limit alerts, newest first. limit <= 0 means all.
func (s *EventLogService) Alerts(limit int) []models.Alert {
	return s.store.Alerts(limit)
}

// ClearHistory empties the history log.
func (s *EventLogService) ClearHistory() {
	s.store.ClearHistory()
}

// ClearAlerts empties the alert list.
func (s *EventLogService) ClearAlerts() {
	s.store.ClearAlerts()
}
