package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"smarthome_gateway/internal/hub"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/service"
)

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Get(logger.ErrorLevel)
	return NewHandler(s, hub.NewHub(log), log).InitRoutes()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetStatus(t *testing.T) {
	mon := &mockMonitoring{snap: models.StatusSnapshot{
		Lights:   models.NewLightStates(),
		AutoMode: true,
	}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := doJSON(t, r, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var snap models.StatusSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !snap.AutoMode {
		t.Error("autoMode lost in response")
	}
}

func TestSendCommandEndpoint(t *testing.T) {
	ctl := &mockControl{sent: true}
	r := newTestRouter(&service.Service{Control: ctl})

	w := doJSON(t, r, http.MethodPost, "/api/command", gin.H{"command": 17})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(ctl.sentCommands) != 1 {
		t.Fatalf("commands = %v", ctl.sentCommands)
	}
	if n, _ := ctl.sentCommands[0].Num(); n != 17 {
		t.Errorf("command = %d, want 17", n)
	}
}

func TestSendCommandEndpointRejected(t *testing.T) {
	ctl := &mockControl{sendErr: errBoom}
	r := newTestRouter(&service.Service{Control: ctl})

	w := doJSON(t, r, http.MethodPost, "/api/command", gin.H{"command": 99})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error message missing")
	}
}

func TestDoorEndpoint(t *testing.T) {
	ctl := &mockControl{sent: true, doorCmd: models.LetterCommand("A")}
	r := newTestRouter(&service.Service{Control: ctl})

	w := doJSON(t, r, http.MethodPost, "/api/door", gin.H{"door": "main", "action": "open"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(ctl.doorCalls) != 1 || ctl.doorCalls[0].Door != "main" || ctl.doorCalls[0].Action != "open" {
		t.Errorf("door calls = %+v", ctl.doorCalls)
	}
}

func TestDoorEndpointUnknownDoor(t *testing.T) {
	ctl := &mockControl{doorErr: errBoom}
	r := newTestRouter(&service.Service{Control: ctl})

	w := doJSON(t, r, http.MethodPost, "/api/door", gin.H{"door": "attic", "action": "open"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestModeEndpoints(t *testing.T) {
	ctl := &mockControl{}
	r := newTestRouter(&service.Service{Control: ctl})

	w := doJSON(t, r, http.MethodPost, "/api/security-mode", gin.H{"enabled": true})
	if w.Code != http.StatusOK {
		t.Fatalf("security-mode status = %d", w.Code)
	}
	if ctl.securityMode == nil || !*ctl.securityMode {
		t.Error("security mode not set")
	}

	w = doJSON(t, r, http.MethodPost, "/api/auto-mode", gin.H{"enabled": false})
	if w.Code != http.StatusOK {
		t.Fatalf("auto-mode status = %d", w.Code)
	}
	if ctl.autoMode == nil || *ctl.autoMode {
		t.Error("auto mode not cleared")
	}

	// Missing enabled flag is a 400.
	w = doJSON(t, r, http.MethodPost, "/api/auto-mode", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing flag status = %d, want 400", w.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	gw := &mockGateway{}
	r := newTestRouter(&service.Service{Gateway: gw})

	w := doJSON(t, r, http.MethodPost, "/api/esp32/register", gin.H{
		"deviceId": "ESP32_GATEWAY_01",
		"ip":       "10.0.0.5",
		"rssi":     -61,
		"version":  "2.1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(gw.registered) != 1 || gw.registered[0].ID != "ESP32_GATEWAY_01" {
		t.Errorf("registered = %+v", gw.registered)
	}

	// deviceId is mandatory.
	w = doJSON(t, r, http.MethodPost, "/api/esp32/register", gin.H{"ip": "10.0.0.5"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", w.Code)
	}
}

func TestMessageEndpoint(t *testing.T) {
	gw := &mockGateway{}
	r := newTestRouter(&service.Service{Gateway: gw})

	w := doJSON(t, r, http.MethodPost, "/api/esp32/message", gin.H{
		"deviceId": "ESP32_GATEWAY_01",
		"message":  "SENSORS:120,24.5,0,0",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(gw.lines) != 1 || gw.lines[0] != "SENSORS:120,24.5,0,0" {
		t.Errorf("lines = %v", gw.lines)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	logs := &mockEventLog{
		events: []models.HistoryEvent{{Type: models.EventLightChange}},
		total:  42,
	}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := doJSON(t, r, http.MethodGet, "/api/history?limit=5&type=light_change", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if logs.lastLimit != 5 || logs.lastType != "light_change" {
		t.Errorf("filter = (%d, %q)", logs.lastLimit, logs.lastType)
	}
	var resp struct {
		Count int `json:"count"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || resp.Total != 42 {
		t.Errorf("resp = %+v", resp)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/history", nil)
	if w.Code != http.StatusOK || !logs.cleared.history {
		t.Error("history not cleared")
	}

	w = doJSON(t, r, http.MethodDelete, "/api/alerts", nil)
	if w.Code != http.StatusOK || !logs.cleared.alerts {
		t.Error("alerts not cleared")
	}
}

func TestScheduleEndpoints(t *testing.T) {
	sch := &mockSchedule{}
	r := newTestRouter(&service.Service{Schedule: sch})

	w := doJSON(t, r, http.MethodPost, "/api/schedule", gin.H{
		"time":    "07:00",
		"days":    []int{1, 2, 3, 4, 5},
		"command": 7,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var rule models.ScheduleRule
	if err := json.Unmarshal(w.Body.Bytes(), &rule); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rule.ID == "" {
		t.Error("rule id missing in response")
	}

	w = doJSON(t, r, http.MethodGet, "/api/schedule", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/schedule/"+rule.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if len(sch.removed) != 1 || sch.removed[0] != rule.ID {
		t.Errorf("removed = %v", sch.removed)
	}

	// Invalid rule is a 400.
	sch.addErr = errBoom
	w = doJSON(t, r, http.MethodPost, "/api/schedule", gin.H{"time": "99:99", "command": 7})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid rule status = %d, want 400", w.Code)
	}
}

func TestAssistantEndpoint(t *testing.T) {
	as := &mockAssistant{
		action: models.CommandAction(7),
		reply:  "Encendiendo luces de la cocina.",
	}
	r := newTestRouter(&service.Service{Assistant: as})

	w := doJSON(t, r, http.MethodPost, "/api/assistant", gin.H{"message": "enciende la cocina"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if as.lastMessage != "enciende la cocina" {
		t.Errorf("message = %q", as.lastMessage)
	}
	var resp struct {
		Response string        `json:"response"`
		Action   models.Action `json:"action"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Response != as.reply || resp.Action.Kind != models.ActionCommand {
		t.Errorf("resp = %+v", resp)
	}

	// Empty message is a 400.
	w = doJSON(t, r, http.MethodPost, "/api/assistant", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty message status = %d, want 400", w.Code)
	}
}

func TestInsightsEndpoints(t *testing.T) {
	ins := &mockInsights{
		patterns:   []service.HourPattern{{Hour: 19, Count: 5}},
		prediction: "pico a las 19:00",
	}
	r := newTestRouter(&service.Service{Insights: ins})

	for _, path := range []string{"/api/ai/patterns", "/api/ai/suggestions", "/api/ai/predict"} {
		if w := doJSON(t, r, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestVoiceEndpoints(t *testing.T) {
	v := &mockVoice{pending: []models.Transcript{{ID: "t-9", Transcript: "hola"}}}
	r := newTestRouter(&service.Service{Voice: v})

	w := doJSON(t, r, http.MethodPost, "/api/voice/transcript", gin.H{
		"deviceId":   "ESP32_WEARABLE_01",
		"transcript": "enciende la sala",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(v.submitted) != 1 || v.submitted[0].Source != "wearable" {
		t.Errorf("submitted = %+v", v.submitted)
	}

	w = doJSON(t, r, http.MethodGet, "/api/voice/pending-transcripts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("drain status = %d", w.Code)
	}
	var resp struct {
		Transcripts []models.Transcript `json:"transcripts"`
		Count       int                 `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || len(v.pending) != 0 {
		t.Errorf("resp = %+v, pending = %+v", resp, v.pending)
	}

	// Missing transcript is a 400.
	w = doJSON(t, r, http.MethodPost, "/api/voice/transcript", gin.H{"deviceId": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing transcript status = %d, want 400", w.Code)
	}
}
