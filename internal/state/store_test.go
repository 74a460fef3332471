package state

import (
	"fmt"
	"sync"
	"testing"

	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
)

// recordingNotifier captures broadcast events in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Broadcast(event string, payload any) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == event {
			c++
		}
	}
	return c
}

func newTestStore() (*Store, *recordingNotifier) {
	s := NewStore([]string{"main", "garage"}, logger.Get(logger.ErrorLevel))
	n := &recordingNotifier{}
	s.SetNotifier(n)
	return s, n
}

func TestApplyLightChange(t *testing.T) {
	s, n := newTestStore()

	s.ApplyLightChange(models.ZoneCocina, true, "arduino")

	snap := s.Snapshot()
	if !snap.Lights[models.ZoneCocina] {
		t.Fatal("cocina should be on")
	}
	if n.count(EvLights) != 1 || n.count(EvNewEvent) != 1 {
		t.Fatalf("unexpected notifications: %v", n.events)
	}
	events, _ := s.History(0, models.EventLightChange)
	if len(events) != 1 {
		t.Fatalf("expected one light_change event, got %d", len(events))
	}
	if events[0].Meta["previousState"] != false {
		t.Fatalf("previousState=%v", events[0].Meta["previousState"])
	}
}

func TestApplyLightChangeUnknownZoneIgnored(t *testing.T) {
	s, n := newTestStore()
	s.ApplyLightChange("Sotano", true, "arduino")
	if len(n.events) != 0 {
		t.Fatalf("unknown zone must not notify, got %v", n.events)
	}
	if _, total := s.History(0, ""); total != 0 {
		t.Fatal("unknown zone must not record history")
	}
}

func TestApplyAllLights(t *testing.T) {
	s, _ := newTestStore()
	s.ApplyAllLights(true)
	snap := s.Snapshot()
	for z, on := range snap.Lights {
		if !on {
			t.Fatalf("zone %s should be on", z)
		}
	}
	s.ApplyAllLights(false)
	if s.Snapshot().Lights.AnyOn() {
		t.Fatal("all lights should be off")
	}
}

func TestApplySensorSnapshot(t *testing.T) {
	s, n := newTestStore()

	s.ApplySensorSnapshot(models.SensorSample{
		Gas: 120, Temperature: 26.5, Motion: true, Doors: []bool{false, true},
	})

	snap := s.Snapshot()
	if snap.Sensors.Gas.Status != models.GasMedium {
		t.Fatalf("gas status=%q", snap.Sensors.Gas.Status)
	}
	if snap.Sensors.Temperature.Status != models.TempHigh {
		t.Fatalf("temperature status=%q", snap.Sensors.Temperature.Status)
	}
	if !snap.Sensors.Motion.Detected {
		t.Fatal("motion should be detected")
	}
	if snap.Sensors.Doors["main"].Open || !snap.Sensors.Doors["garage"].Open {
		t.Fatalf("doors: %+v", snap.Sensors.Doors)
	}
	// Security mode off: no alert despite the motion edge.
	if n.count(EvNewAlert) != 0 {
		t.Fatal("no alert expected with security mode off")
	}
}

func TestMotionEdgeAlertRequiresSecurityMode(t *testing.T) {
	s, n := newTestStore()
	s.SetSecurityMode(true)

	sample := models.SensorSample{Motion: true, Doors: []bool{false, false}}
	s.ApplySensorSnapshot(sample)
	if n.count(EvNewAlert) != 1 {
		t.Fatalf("expected one motion alert, got %d", n.count(EvNewAlert))
	}

	// Still detected: no new edge, no second alert.
	s.ApplySensorSnapshot(sample)
	if n.count(EvNewAlert) != 1 {
		t.Fatal("level-triggered alert; motion alerting must be edge-triggered")
	}

	// Release and trigger again: a new edge fires again.
	s.ApplySensorSnapshot(models.SensorSample{Motion: false, Doors: []bool{false, false}})
	s.ApplySensorSnapshot(sample)
	if n.count(EvNewAlert) != 2 {
		t.Fatalf("expected second alert on new edge, got %d", n.count(EvNewAlert))
	}
}

func TestAlertBounds(t *testing.T) {
	s, _ := newTestStore()
	for i := 0; i < 60; i++ {
		s.AppendAlert(models.Alert{Type: "T", Value: fmt.Sprintf("v%d", i)})
	}
	alerts := s.Alerts(0)
	if len(alerts) != 50 {
		t.Fatalf("alert list len=%d, want 50", len(alerts))
	}
	// Newest first: the last appended alert sits at index 0.
	if alerts[0].Value != "v59" {
		t.Fatalf("alerts[0]=%q, want v59", alerts[0].Value)
	}
	if alerts[49].Value != "v10" {
		t.Fatalf("alerts[49]=%q, want v10", alerts[49].Value)
	}
}

func TestHistoryBoundsFIFO(t *testing.T) {
	s, _ := newTestStore()
	for i := 0; i < 1100; i++ {
		s.AppendHistory(models.HistoryEvent{
			Type: "tick",
			Meta: map[string]any{"i": i},
		})
	}
	events, total := s.History(0, "")
	if total != 1000 || len(events) != 1000 {
		t.Fatalf("history len=%d total=%d, want 1000", len(events), total)
	}
	if events[0].Meta["i"] != 100 {
		t.Fatalf("oldest surviving entry i=%v, want 100 (FIFO eviction)", events[0].Meta["i"])
	}
	if events[999].Meta["i"] != 1099 {
		t.Fatalf("newest entry i=%v", events[999].Meta["i"])
	}
}

func TestHistoryFilterAndLimit(t *testing.T) {
	s, _ := newTestStore()
	s.AppendHistory(models.HistoryEvent{Type: models.EventCommandSent})
	s.AppendHistory(models.HistoryEvent{Type: models.EventArduinoMessage})
	s.AppendHistory(models.HistoryEvent{Type: models.EventCommandSent})

	events, total := s.History(0, models.EventCommandSent)
	if len(events) != 2 || total != 3 {
		t.Fatalf("filtered len=%d total=%d", len(events), total)
	}
	events, _ = s.History(1, "")
	if len(events) != 1 || events[0].Type != models.EventCommandSent {
		t.Fatalf("limit should keep the newest entries: %+v", events)
	}
}

func TestScheduleRules(t *testing.T) {
	s, n := newTestStore()
	s.AddRule(models.ScheduleRule{ID: "r1", Time: "07:00", Days: []int{1}, Enabled: true})
	s.AddRule(models.ScheduleRule{ID: "r2", Time: "08:00", Days: []int{2}, Enabled: true})
	if len(s.Rules()) != 2 {
		t.Fatal("expected two rules")
	}
	s.RemoveRule("r1")
	rules := s.Rules()
	if len(rules) != 1 || rules[0].ID != "r2" {
		t.Fatalf("rules after remove: %+v", rules)
	}
	if n.count(EvSchedule) != 3 {
		t.Fatalf("schedule-updated count=%d", n.count(EvSchedule))
	}
}

func TestClearLogs(t *testing.T) {
	s, _ := newTestStore()
	s.AppendHistory(models.HistoryEvent{Type: "tick"})
	s.AppendAlert(models.Alert{Type: "T", Value: "v"})

	s.ClearHistory()
	s.ClearAlerts()

	if _, total := s.History(0, ""); total != 0 {
		t.Fatalf("history total = %d after clear", total)
	}
	if len(s.Alerts(0)) != 0 {
		t.Fatal("alerts survived clear")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := newTestStore()
	s.ApplyLightChange(models.ZoneCocina, true, "test")
	snap := s.Snapshot()

	s.ApplyLightChange(models.ZoneCocina, false, "test")
	if !snap.Lights[models.ZoneCocina] {
		t.Fatal("snapshot must not change retroactively")
	}
	snap.Lights[models.ZoneCuarto] = true
	if s.Snapshot().Lights[models.ZoneCuarto] {
		t.Fatal("mutating a snapshot must not leak into the store")
	}
}

func TestConcurrentMutations(t *testing.T) {
	s, _ := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.ApplyLightChange(models.ZoneCocina, j%2 == 0, "test")
				s.AppendHistory(models.HistoryEvent{Type: "tick"})
				s.CountEvent()
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	if s.Snapshot().Statistics.TotalEvents != 1600 {
		t.Fatalf("event counter=%d", s.Snapshot().Statistics.TotalEvents)
	}
}
