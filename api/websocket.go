package api

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return isAllowedOrigin(r.Header.Get("Origin"))
	},
}

// wsClient is one connected WebSocket client streaming query/dataset
// events for a single Subscription.
type wsClient struct {
	conn *websocket.Conn
	sub  *Subscription
	mu   sync.Mutex
}

// handleWebSocket upgrades the connection and starts the read/write pumps
// for a subscription filtered by the dataset and event-type query
// parameters (?datasetId=&events=query,dataset_created).
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	sub := &Subscription{
		DatasetID:  r.URL.Query().Get("datasetId"),
		EventTypes: parseEventTypes(r.URL.Query()["events"]),
		Channel:    make(chan BroadcastEvent, 64),
	}
	client := &wsClient{conn: conn, sub: sub}

	s.broadcaster.Subscribe(sub)
	go client.writePump()
	client.readPump(s.broadcaster)
}

func parseEventTypes(values []string) map[EventType]bool {
	if len(values) == 0 {
		return nil
	}
	out := make(map[EventType]bool, len(values))
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			out[EventType(t)] = true
		}
	}
	return out
}

// writePump drains sub.Channel to the socket, pinging on idle so the
// connection doesn't get reaped by an intermediate proxy.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case ev, ok := <-c.sub.Channel:
			if !ok {
				return
			}
			c.mu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteJSON(ev)
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-ticker.C:
			c.mu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// readPump discards client frames (this endpoint is push-only) until the
// connection closes, then unsubscribes.
func (c *wsClient) readPump(b *Broadcaster) {
	defer b.Unsubscribe(c.sub)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
