package service

import (
	"testing"
	"time"

	"smarthome_gateway/internal/models"
)

func TestPatternsTopHours(t *testing.T) {
	f := newFixture(t, nil)

	at := func(hour int) time.Time {
		return time.Date(2025, 3, 10, hour, 15, 0, 0, time.Local)
	}
	add := func(hour int, on bool) {
		f.store.AppendHistory(models.HistoryEvent{
			Type:      models.EventLightChange,
			Timestamp: at(hour),
			Meta:      map[string]any{"zone": models.ZoneCocina, "state": on},
		})
	}

	for i := 0; i < 5; i++ {
		add(19, true)
	}
	for i := 0; i < 3; i++ {
		add(7, true)
	}
	add(12, true)
	add(22, true)
	// Switch-offs never count.
	for i := 0; i < 10; i++ {
		add(3, false)
	}

	got := f.svc.Patterns()
	if len(got) != 3 {
		t.Fatalf("patterns = %+v, want 3 buckets", got)
	}
	if got[0].Hour != 19 || got[0].Count != 5 {
		t.Errorf("top bucket = %+v", got[0])
	}
	if got[1].Hour != 7 || got[1].Count != 3 {
		t.Errorf("second bucket = %+v", got[1])
	}
	// Ties break toward the earlier hour.
	if got[2].Hour != 12 {
		t.Errorf("third bucket = %+v", got[2])
	}
}

func TestPatternsEmptyHistory(t *testing.T) {
	f := newFixture(t, nil)

	if got := f.svc.Patterns(); len(got) != 0 {
		t.Errorf("patterns = %+v, want none", got)
	}
	if f.svc.Prediction() == "" {
		t.Error("prediction empty")
	}
}

func TestSuggestionsAt(t *testing.T) {
	f := newFixture(t, nil)
	insights := NewInsightsService(f.store)

	// Evening, exteriors off: suggest turning them on.
	got := insights.SuggestionsAt(20)
	if len(got) != 1 || got[0].Type != "security" {
		t.Fatalf("evening suggestions = %+v", got)
	}
	if code, _ := got[0].Command.Num(); code != 1 {
		t.Errorf("suggested command = %d, want 1", code)
	}

	// Evening with exteriors already on: nothing to suggest.
	f.store.ApplyLightChange(models.ZoneExteriores, true, "test")
	if got = insights.SuggestionsAt(20); len(got) != 0 {
		t.Errorf("suggestions = %+v, want none", got)
	}

	// Late night with a light on: suggest all-off.
	got = insights.SuggestionsAt(2)
	if len(got) != 1 || got[0].Type != "energy" {
		t.Fatalf("night suggestions = %+v", got)
	}
	if code, _ := got[0].Command.Num(); code != 18 {
		t.Errorf("suggested command = %d, want 18", code)
	}
}
