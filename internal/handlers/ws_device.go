package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// deviceMsg is an inbound frame from a controller on the raw socket.
// Controllers either send JSON envelopes or bare protocol lines.
type deviceMsg struct {
	Type     string `json:"type"`
	DeviceID string `json:"deviceId"`
	Message  string `json:"message"`
}

// deviceConn adapts a websocket to the registry's Connection interface.
// Writes are serialized behind a mutex; gorilla websockets allow only one
// concurrent writer.
type deviceConn struct {
	mu   sync.Mutex
	ws   *websocket.Conn
	open bool
}

func newDeviceConn(ws *websocket.Conn) *deviceConn {
	return &deviceConn{ws: ws, open: true}
}

func (d *deviceConn) Send(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return d.ws.WriteMessage(websocket.TextMessage, data)
}

func (d *deviceConn) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	return d.ws.Close()
}

func (d *deviceConn) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// wsDevice handles the controller-facing websocket. The first
// esp32_connected frame binds the socket to a device id; until then,
// protocol lines are attributed to an anonymous id.
func (h *Handler) wsDevice(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("device_ws_upgrade_failed", "err", err)
		return
	}
	conn := newDeviceConn(ws)

	ws.SetReadLimit(maxMsgSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	deviceID := ""
	defer func() {
		if deviceID != "" {
			h.services.MarkDisconnected(deviceID)
		}
		_ = conn.Close()
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			h.log.Infow("device_ws_closed", "device", deviceID, "err", err)
			return
		}
		deviceID = h.handleDeviceFrame(conn, deviceID, data)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// handleDeviceFrame processes one inbound frame and returns the (possibly
// newly learned) device id for the socket.
func (h *Handler) handleDeviceFrame(conn *deviceConn, deviceID string, data []byte) string {
	text := strings.TrimSpace(string(data))

	var msg deviceMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		// Bare protocol line, no JSON envelope.
		if text != "" {
			h.services.ProcessDeviceLine(orAnonymous(deviceID), text)
		}
		return deviceID
	}

	switch msg.Type {
	case "esp32_connected":
		if msg.DeviceID != "" {
			deviceID = msg.DeviceID
			h.services.IdentifyDevice(deviceID, conn)
		}
	case "heartbeat":
		h.services.Heartbeat(orAnonymous(deviceID))
	default:
		if msg.Message != "" {
			id := msg.DeviceID
			if id == "" {
				id = orAnonymous(deviceID)
			}
			h.services.ProcessDeviceLine(id, msg.Message)
		} else if text != "" {
			h.services.ProcessDeviceLine(orAnonymous(deviceID), text)
		}
	}
	return deviceID
}

func orAnonymous(deviceID string) string {
	if deviceID == "" {
		return "unknown"
	}
	return deviceID
}
