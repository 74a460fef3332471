package service

import (
	"fmt"
	"sort"
	"time"

	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// HourPattern is one hour-of-day bucket of light activations.
type HourPattern struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Suggestion is one actionable hint, optionally carrying the command that
// would apply it.
type Suggestion struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Command models.Command `json:"command,omitempty"`
}

// InsightsService derives simple usage heuristics from the history log.
// Everything here is recomputed on demand from whatever history survives
// the FIFO cap; these are hints, not statistics.
type InsightsService struct {
	store *state.Store
}

func NewInsightsService(store *state.Store) *InsightsService {
	return &InsightsService{store: store}
}

// Patterns returns the three hours of day with the most light switch-ons.
func (s *InsightsService) Patterns() []HourPattern {
	events, _ := s.store.History(0, models.EventLightChange)

	counts := make(map[int]int)
	for _, e := range events {
		if on, ok := e.Meta["state"].(bool); !ok || !on {
			continue
		}
		counts[e.Timestamp.Local().Hour()]++
	}

	out := make([]HourPattern, 0, len(counts))
	for h, c := range counts {
		out = append(out, HourPattern{Hour: h, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hour < out[j].Hour
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// Suggestions returns hints for the current hour.
func (s *InsightsService) Suggestions() []Suggestion {
	return s.SuggestionsAt(time.Now().Local().Hour())
}

// SuggestionsAt evaluates the suggestion rules for a given hour of day.
// In the evening, dark exteriors suggest the exterior lights; late at
// night, any light still on suggests the all-off command.
func (s *InsightsService) SuggestionsAt(hour int) []Suggestion {
	snap := s.store.Snapshot()

	var out []Suggestion
	if hour >= 18 && hour < 23 && !snap.Lights[models.ZoneExteriores] {
		out = append(out, Suggestion{
			Type:    "security",
			Message: "Anochece y las luces exteriores están apagadas. ¿Las enciendo?",
			Command: models.NumCommand(1),
		})
	}
	if (hour >= 23 || hour < 5) && snap.Lights.AnyOn() {
		out = append(out, Suggestion{
			Type:    "energy",
			Message: "Es de madrugada y hay luces encendidas. Puedes apagarlas todas.",
			Command: models.NumCommand(18),
		})
	}
	if snap.Sensors.Temperature.Status == models.TempHigh {
		out = append(out, Suggestion{
			Type:    "comfort",
			Message: fmt.Sprintf("La temperatura está alta (%.1f°C). Ventila la casa.", snap.Sensors.Temperature.Value),
		})
	}
	return out
}

// Prediction names the most likely next light activation hour.
func (s *InsightsService) Prediction() string {
	patterns := s.Patterns()
	if len(patterns) == 0 {
		return "Aún no hay suficiente actividad para predecir patrones."
	}
	return fmt.Sprintf("La mayor actividad de luces ocurre alrededor de las %02d:00.", patterns[0].Hour)
}
