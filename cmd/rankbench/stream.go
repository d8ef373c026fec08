package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // localhost demo tool
}

// sampleBroadcaster fans a Report out to every connected websocket
// client, mirroring the shape of the server's own subscriber fan-out
// without pulling in the rest of that package.
type sampleBroadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newSampleBroadcaster() *sampleBroadcaster {
	return &sampleBroadcaster{clients: make(map[*websocket.Conn]bool)}
}

func (b *sampleBroadcaster) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	b.mu.Lock()
	b.clients[conn] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *sampleBroadcaster) publish(report Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(report); err != nil {
			log.Printf("websocket write error: %v", err)
		}
	}
}
