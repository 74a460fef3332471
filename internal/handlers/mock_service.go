package handlers

import (
	"context"
	"errors"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/service"
)

// ---- Service Mocks ----

type mockGateway struct {
	lines       []string
	lineDevices []string
	registered  []models.Device
	statuses    []models.Device
	heartbeats  []string
	dropped     []string
}

func (m *mockGateway) ProcessDeviceLine(deviceID, line string) {
	m.lineDevices = append(m.lineDevices, deviceID)
	m.lines = append(m.lines, line)
}
func (m *mockGateway) IdentifyDevice(deviceID string, conn devices.Connection) {}
func (m *mockGateway) RegisterDevice(meta models.Device)                       { m.registered = append(m.registered, meta) }
func (m *mockGateway) UpdateDeviceStatus(meta models.Device)                   { m.statuses = append(m.statuses, meta) }
func (m *mockGateway) Heartbeat(deviceID string)                               { m.heartbeats = append(m.heartbeats, deviceID) }
func (m *mockGateway) MarkDisconnected(deviceID string)                        { m.dropped = append(m.dropped, deviceID) }

type mockControl struct {
	sentCommands []models.Command
	sendErr      error
	sent         bool

	doorCalls []struct{ Door, Action string }
	doorCmd   models.Command
	doorErr   error

	autoMode     *bool
	securityMode *bool
}

func (m *mockControl) SendCommand(cmd models.Command, source string) (bool, error) {
	if m.sendErr != nil {
		return false, m.sendErr
	}
	m.sentCommands = append(m.sentCommands, cmd)
	return m.sent, nil
}
func (m *mockControl) SendDoorCommand(doorID, action, source string) (models.Command, bool, error) {
	if m.doorErr != nil {
		return models.Command{}, false, m.doorErr
	}
	m.doorCalls = append(m.doorCalls, struct{ Door, Action string }{doorID, action})
	return m.doorCmd, m.sent, nil
}
func (m *mockControl) SetAutoMode(enabled bool)     { m.autoMode = &enabled }
func (m *mockControl) SetSecurityMode(enabled bool) { m.securityMode = &enabled }

type mockMonitoring struct {
	snap models.StatusSnapshot
}

func (m *mockMonitoring) Status() models.StatusSnapshot { return m.snap }

type mockEventLog struct {
	events  []models.HistoryEvent
	total   int
	alerts  []models.Alert
	cleared struct{ history, alerts bool }

	lastLimit int
	lastType  string
}

func (m *mockEventLog) History(limit int, eventType string) ([]models.HistoryEvent, int) {
	m.lastLimit = limit
	m.lastType = eventType
	return m.events, m.total
}
func (m *mockEventLog) Alerts(limit int) []models.Alert {
	m.lastLimit = limit
	return m.alerts
}
func (m *mockEventLog) ClearHistory() { m.cleared.history = true }
func (m *mockEventLog) ClearAlerts()  { m.cleared.alerts = true }

type mockSchedule struct {
	rules   []models.ScheduleRule
	addErr  error
	removed []string
}

func (m *mockSchedule) AddRule(r models.ScheduleRule) (models.ScheduleRule, error) {
	if m.addErr != nil {
		return models.ScheduleRule{}, m.addErr
	}
	r.ID = "rule-1"
	m.rules = append(m.rules, r)
	return r, nil
}
func (m *mockSchedule) RemoveRule(id string)         { m.removed = append(m.removed, id) }
func (m *mockSchedule) Rules() []models.ScheduleRule { return m.rules }

type mockAssistant struct {
	action models.Action
	reply  string
	status models.AssistantStatus

	lastMessage string
}

func (m *mockAssistant) HandleMessage(_ context.Context, text string) (models.Action, string) {
	m.lastMessage = text
	return m.action, m.reply
}
func (m *mockAssistant) Availability(_ context.Context) models.AssistantStatus { return m.status }

type mockInsights struct {
	patterns    []service.HourPattern
	suggestions []service.Suggestion
	prediction  string
}

func (m *mockInsights) Patterns() []service.HourPattern   { return m.patterns }
func (m *mockInsights) Suggestions() []service.Suggestion { return m.suggestions }
func (m *mockInsights) Prediction() string                { return m.prediction }

type mockVoice struct {
	submitted []models.Transcript
	pending   []models.Transcript
}

func (m *mockVoice) SubmitTranscript(deviceID, transcript, source string) models.Transcript {
	t := models.Transcript{ID: "t-1", DeviceID: deviceID, Transcript: transcript, Source: source}
	m.submitted = append(m.submitted, t)
	return t
}
func (m *mockVoice) DrainTranscripts() []models.Transcript {
	out := m.pending
	m.pending = nil
	return out
}

var errBoom = errors.New("boom")
