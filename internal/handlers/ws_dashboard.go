package handlers

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"smarthome_gateway/internal/models"
)

// sendBuffer bounds the per-dashboard outbound queue. A dashboard that
// cannot drain this many events is dropped rather than allowed to stall
// the hub.
const sendBuffer = 64

// wsEnvelope frames every dashboard-bound event.
type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// dashboardMsg is an inbound frame from a dashboard.
type dashboardMsg struct {
	Type    string         `json:"type"`
	Command models.Command `json:"command"`
}

// dashboardConn is a hub observer backed by a websocket. Notify only
// enqueues; the write pump owns the socket, so a slow consumer fails fast
// on a full buffer instead of blocking the broadcaster.
type dashboardConn struct {
	ws     *websocket.Conn
	send   chan wsEnvelope
	closed chan struct{}
	once   sync.Once
}

func newDashboardConn(ws *websocket.Conn) *dashboardConn {
	return &dashboardConn{
		ws:     ws,
		send:   make(chan wsEnvelope, sendBuffer),
		closed: make(chan struct{}),
	}
}

// Notify implements hub.Observer.
func (d *dashboardConn) Notify(event string, payload any) error {
	select {
	case d.send <- wsEnvelope{Type: event, Data: payload}:
		return nil
	case <-d.closed:
		return errConnClosed
	default:
		return errBufferFull
	}
}

// Close implements hub.Observer.
func (d *dashboardConn) Close() {
	d.once.Do(func() {
		close(d.closed)
		_ = d.ws.Close()
	})
}

var (
	errConnClosed = wsError("dashboard connection closed")
	errBufferFull = wsError("dashboard send buffer full")
)

type wsError string

func (e wsError) Error() string { return string(e) }

// writePump drains the send queue onto the socket and keeps the
// connection alive with pings.
func (d *dashboardConn) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		d.Close()
	}()

	for {
		select {
		case <-d.closed:
			return
		case env := <-d.send:
			_ = d.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := d.ws.WriteJSON(env); err != nil {
				return
			}
		case <-ping.C:
			_ = d.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := d.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// wsDashboard attaches a dashboard to the broadcast hub. The hub pushes
// the full state snapshot on attach, then deltas as they commit. Inbound
// send-command frames route through the control layer.
func (h *Handler) wsDashboard(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("dashboard_ws_upgrade_failed", "err", err)
		return
	}
	conn := newDashboardConn(ws)
	go conn.writePump()

	h.hub.Attach(conn)
	defer func() {
		h.hub.Detach(conn)
		conn.Close()
	}()

	ws.SetReadLimit(maxMsgSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg dashboardMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "send-command" {
			if _, err := h.services.SendCommand(msg.Command, "dashboard"); err != nil {
				_ = conn.Notify("command-rejected", gin.H{"error": err.Error()})
			}
		}
	}
}
