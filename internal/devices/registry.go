package devices

import (
	"sync"
	"time"

	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
)

// registerFreshness is the window within which a re-registration is treated
// as a heartbeat: metadata refreshes quietly instead of logging a full
// re-announce.
const registerFreshness = 5 * time.Second

// Registry tracks every controller the gateway has ever seen, plus the live
// transport handle for those currently connected. Device rows are never
// deleted; a closed transport only flips the row to disconnected.
type Registry struct {
	mu    sync.RWMutex
	rows  map[string]models.Device
	conns map[string]Connection
	log   *logger.Logger
}

// NewRegistry builds an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		rows:  make(map[string]models.Device),
		conns: make(map[string]Connection),
		log:   log,
	}
}

// Identify binds a live raw-socket connection to a device id. The device
// moves to connected; any previous handle for the id is replaced.
func (r *Registry) Identify(id string, conn Connection) {
	now := time.Now().UTC()

	r.mu.Lock()
	row := r.rows[id]
	row.ID = id
	row.Transport = models.TransportRawSocket
	row.Connected = true
	row.LastSeen = now
	r.rows[id] = row
	r.conns[id] = conn
	r.mu.Unlock()

	r.log.Infow("device identified", "device", id)
}

// Register upserts device metadata from the HTTP registration endpoint.
// It returns true when the previous registration is fresh enough that this
// one is just a metadata refresh.
func (r *Registry) Register(meta models.Device) bool {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, known := r.rows[meta.ID]
	refresh := known && !existing.LastSeen.IsZero() && now.Sub(existing.LastSeen) < registerFreshness

	row := existing
	row.ID = meta.ID
	row.IP = meta.IP
	row.RSSI = meta.RSSI
	row.Version = meta.Version
	row.ArduinoReady = meta.ArduinoReady
	row.Connected = true
	row.LastSeen = now
	if row.Transport == "" {
		row.Transport = models.TransportHTTPPolling
	}
	r.rows[meta.ID] = row

	if !refresh {
		r.log.Infow("device registered", "device", meta.ID, "ip", meta.IP, "rssi", meta.RSSI)
	}
	return refresh
}

// Heartbeat refreshes last-seen for a known device. Unknown ids are ignored.
func (r *Registry) Heartbeat(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return
	}
	row.LastSeen = time.Now().UTC()
	r.rows[id] = row
}

// UpdateStatus merges a status report into the device row.
func (r *Registry) UpdateStatus(meta models.Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[meta.ID]
	if !ok {
		return
	}
	row.IP = meta.IP
	row.RSSI = meta.RSSI
	row.Status = meta.Status
	row.UptimeSec = meta.UptimeSec
	row.ArduinoReady = meta.ArduinoReady
	row.LastSeen = time.Now().UTC()
	r.rows[meta.ID] = row
}

// SetReady flags whether the downstream controller behind the device has
// announced readiness. Unknown ids are ignored.
func (r *Registry) SetReady(id string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return
	}
	row.ArduinoReady = ready
	row.LastSeen = time.Now().UTC()
	r.rows[id] = row
}

// Drop marks a device disconnected and forgets its transport handle. The
// row itself is retained for last-seen display.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	row, ok := r.rows[id]
	if ok {
		row.Connected = false
		r.rows[id] = row
	}
	r.mu.Unlock()

	if ok {
		r.log.Infow("device disconnected", "device", id)
	}
}

// Connection returns the live handle for a device, if it has one.
func (r *Registry) Connection(id string) (Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[id]
	return conn, ok
}

// Devices returns a copy of every known device row.
func (r *Registry) Devices() map[string]models.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.Device, len(r.rows))
	for k, v := range r.rows {
		out[k] = v
	}
	return out
}
