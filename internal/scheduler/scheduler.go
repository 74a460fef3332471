package scheduler

import (
	"context"
	"time"

	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
	"smarthome_gateway/internal/state"
)

// Scheduler fires schedule rules against the default controller. Rules
// are evaluated once per tick; with the standard one-minute tick each
// rule fires at most once per due minute.
type Scheduler struct {
	store  *state.Store
	router *devices.Router
	device string
	log    *logger.Logger
}

// New builds a scheduler dispatching to the given default device id.
func New(store *state.Store, router *devices.Router, device string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		router: router,
		device: device,
		log:    log,
	}
}

// Run ticks at the given interval until ctx is canceled. Nothing fires
// while automation mode is off.
func (s *Scheduler) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.Evaluate(now)
		}
	}
}

// Evaluate fires every rule due at the given time.
func (s *Scheduler) Evaluate(now time.Time) {
	if !s.store.AutoMode() {
		return
	}
	for _, rule := range Due(s.store.Rules(), now) {
		s.fire(rule, now)
	}
}

// Due filters the rules that should fire at the given time.
func Due(rules []models.ScheduleRule, now time.Time) []models.ScheduleRule {
	var out []models.ScheduleRule
	for _, r := range rules {
		if r.DueAt(now) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Scheduler) fire(rule models.ScheduleRule, now time.Time) {
	sent := s.router.Send(s.device, rule.Command)
	s.store.CountCommand()
	s.store.AppendHistory(models.HistoryEvent{
		Type:      models.EventScheduledCommand,
		Timestamp: now,
		DeviceID:  s.device,
		Source:    "scheduler",
		Meta: map[string]any{
			"ruleId":   rule.ID,
			"ruleName": rule.Name,
			"command":  rule.Command,
			"sent":     sent,
		},
	})
	s.log.Infow("schedule rule fired",
		"rule", rule.Name, "command", rule.Command.String(), "sent", sent)
}
