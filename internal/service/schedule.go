package service

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

var ruleTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ScheduleService validates and stores automation rules. Evaluation lives
// in the scheduler loop; this service only manages the rule set.
type ScheduleService struct {
	store *state.Store
}

func NewScheduleService(store *state.Store) *ScheduleService {
	return &ScheduleService{store: store}
}

// AddRule validates, normalizes, and stores one rule. Days defaults to
// every day, Enabled to true. The stored rule, with its generated id, is
// returned.
func (s *ScheduleService) AddRule(r models.ScheduleRule) (models.ScheduleRule, error) {
	m := ruleTimeRe.FindStringSubmatch(r.Time)
	if m == nil {
		return models.ScheduleRule{}, fmt.Errorf("invalid time %q, want HH:MM", r.Time)
	}
	// Zero-pad single-digit hours so the minute tick comparison matches.
	if len(m[1]) == 1 {
		r.Time = "0" + r.Time
	}

	if r.Command.IsZero() {
		return models.ScheduleRule{}, fmt.Errorf("rule needs a command")
	}
	if n, ok := r.Command.Num(); ok && (n < 1 || n > models.AllLightsOffCode) {
		return models.ScheduleRule{}, fmt.Errorf("command code %d out of range", n)
	}
	for _, d := range r.Days {
		if d < 0 || d > 6 {
			return models.ScheduleRule{}, fmt.Errorf("invalid weekday %d", d)
		}
	}
	if len(r.Days) == 0 {
		r.Days = []int{0, 1, 2, 3, 4, 5, 6}
	}
	if r.Name == "" {
		r.Name = "Regla " + r.Time
	}

	r.ID = uuid.NewString()
	r.Enabled = true
	r.Created = nowUTC()
	s.store.AddRule(r)
	return r, nil
}

// RemoveRule deletes a rule by id. Unknown ids are a no-op.
func (s *ScheduleService) RemoveRule(id string) {
	s.store.RemoveRule(id)
}

// Rules returns the current rule set.
func (s *ScheduleService) Rules() []models.ScheduleRule {
	return s.store.Rules()
}
