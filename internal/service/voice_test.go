package service

import (
	"fmt"
	"testing"

	"smarthome_gateway/internal/models"
)

func TestSubmitAndDrainTranscripts(t *testing.T) {
	f := newFixture(t, nil)

	tr := f.svc.SubmitTranscript("ESP32_WEARABLE_01", "enciende la cocina", "wearable")
	if tr.ID == "" {
		t.Error("transcript id not assigned")
	}
	if !f.notifier.has("voice-transcript-received") {
		t.Error("transcript not broadcast")
	}

	got := f.svc.DrainTranscripts()
	if len(got) != 1 || got[0].Transcript != "enciende la cocina" {
		t.Fatalf("drained = %+v", got)
	}

	// Drain empties the queue.
	if again := f.svc.DrainTranscripts(); len(again) != 0 {
		t.Errorf("second drain = %d entries, want 0", len(again))
	}

	events, _ := f.svc.History(0, models.EventVoiceTranscript)
	if len(events) != 1 {
		t.Errorf("voice_transcript events = %d, want 1", len(events))
	}
}

func TestTranscriptQueueBounded(t *testing.T) {
	f := newFixture(t, nil)

	for i := 0; i < 30; i++ {
		f.svc.SubmitTranscript("ESP32_WEARABLE_01", fmt.Sprintf("mensaje %d", i), "wearable")
	}

	got := f.svc.DrainTranscripts()
	if len(got) != 20 {
		t.Fatalf("queue length = %d, want 20", len(got))
	}
	// Oldest entries are dropped first.
	if got[0].Transcript != "mensaje 10" || got[19].Transcript != "mensaje 29" {
		t.Errorf("window = %q .. %q", got[0].Transcript, got[19].Transcript)
	}
}
