package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smarthome_gateway/internal/assistant"
	"smarthome_gateway/internal/devices"
	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/state"
)

type recordedEvent struct {
	Name    string
	Payload any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Broadcast(event string, payload any) {
	n.mu.Lock()
	n.events = append(n.events, recordedEvent{event, payload})
	n.mu.Unlock()
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Name
	}
	return out
}

func (n *recordingNotifier) has(name string) bool {
	for _, e := range n.names() {
		if e == name {
			return true
		}
	}
	return false
}

type fakeConn struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeConn) Send(data []byte) error {
	f.mu.Lock()
	f.sent = append(f.sent, string(data))
	f.mu.Unlock()
	return nil
}
func (f *fakeConn) Close() error { return nil }
func (f *fakeConn) IsOpen() bool { return true }

func (f *fakeConn) frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

type fixture struct {
	svc      *Service
	store    *state.Store
	registry *devices.Registry
	notifier *recordingNotifier
	conn     *fakeConn
}

const testDevice = "ESP32_GATEWAY_01"

func newFixture(t *testing.T, gen assistant.Generator) *fixture {
	t.Helper()
	log := logger.Get(logger.ErrorLevel)

	doors, err := devices.NewDoorTable([]devices.DoorConfig{
		{ID: "main", Open: "A", Close: "C"},
		{ID: "garage", Open: "G", Close: "H"},
	}, "main")
	if err != nil {
		t.Fatalf("NewDoorTable: %v", err)
	}

	store := state.NewStore(doors.IDs(), log)
	notifier := &recordingNotifier{}
	store.SetNotifier(notifier)
	registry := devices.NewRegistry(log)
	conn := &fakeConn{}
	registry.Identify(testDevice, conn)

	if gen == nil {
		gen = fakeGenerator{reply: "", err: errUnavailable}
	}
	interp := assistant.NewInterpreter(gen, doors, time.Second, log)

	svc := NewService(Deps{
		Store:         store,
		Registry:      registry,
		Router:        devices.NewRouter(registry, log),
		Doors:         doors,
		Notifier:      notifier,
		Interpreter:   interp,
		Ollama:        assistant.NewClient(assistant.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}),
		DefaultDevice: testDevice,
		Log:           log,
	})
	return &fixture{svc: svc, store: store, registry: registry, notifier: notifier, conn: conn}
}

var errUnavailable = errors.New("connection refused")

type fakeGenerator struct {
	reply string
	err   error
}

func (f fakeGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return f.reply, f.err
}
