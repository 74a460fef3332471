package service

import (
	"sync"

	"github.com/google/uuid"

	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// transcriptCap bounds the pending transcript queue; when full, the oldest
// entry is dropped.
const transcriptCap = 20

// VoiceService queues wearable voice transcripts until a dashboard picks
// them up. Reading drains: each transcript is delivered at most once.
type VoiceService struct {
	mu       sync.Mutex
	queue    []models.Transcript
	store    *state.Store
	notifier state.Notifier
	log      *logger.Logger
}

func NewVoiceService(store *state.Store, notifier state.Notifier, log *logger.Logger) *VoiceService {
	return &VoiceService{
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// SubmitTranscript queues one transcript and announces it to dashboards.
func (s *VoiceService) SubmitTranscript(deviceID, transcript, source string) models.Transcript {
	t := models.Transcript{
		ID:         uuid.NewString(),
		DeviceID:   deviceID,
		Transcript: transcript,
		Source:     source,
		Timestamp:  nowUTC(),
	}

	s.mu.Lock()
	s.queue = append(s.queue, t)
	if len(s.queue) > transcriptCap {
		s.queue = s.queue[len(s.queue)-transcriptCap:]
	}
	s.mu.Unlock()

	s.notifier.Broadcast("voice-transcript-received", t)
	s.store.AppendHistory(models.HistoryEvent{
		Type:      models.EventVoiceTranscript,
		Timestamp: t.Timestamp,
		DeviceID:  deviceID,
		Source:    source,
		Meta:      map[string]any{"transcript": transcript},
	})
	s.store.CountEvent()
	s.log.Infow("voice transcript queued", "device", deviceID, "source", source)
	return t
}

// DrainTranscripts atomically returns and clears the pending queue.
func (s *VoiceService) DrainTranscripts() []models.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.queue
	s.queue = nil
	return out
}
