package devices

import (
	"encoding/json"

	"smarthome_gateway/internal/logger"
	"smarthome_gateway/internal/models"
)

// Router resolves a device's live transport handle and sends commands over
// it. Delivery is fire-and-forget, at most once: no acknowledgment wait, no
// retry. A device without a live handle is not an error; Send just reports
// that nothing was transmitted.
type Router struct {
	registry *Registry
	log      *logger.Logger
}

// NewRouter builds a router over the registry.
func NewRouter(registry *Registry, log *logger.Logger) *Router {
	return &Router{registry: registry, log: log}
}

// Send serializes the command envelope and transmits it to the device.
// It returns whether transmission was attempted successfully.
func (r *Router) Send(deviceID string, cmd models.Command) bool {
	conn, ok := r.registry.Connection(deviceID)
	if !ok || !conn.IsOpen() {
		r.log.Infow("device not connected, command not sent", "device", deviceID, "command", cmd.String())
		return false
	}

	data, err := json.Marshal(models.Envelope{Command: cmd})
	if err != nil {
		r.log.Errorw("command marshal failed", "err", err, "command", cmd.String())
		return false
	}
	if err := conn.Send(data); err != nil {
		r.log.Errorw("command send failed", "err", err, "device", deviceID, "command", cmd.String())
		return false
	}

	r.log.Infow("command sent", "device", deviceID, "command", cmd.String())
	return true
}
