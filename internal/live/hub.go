package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/measure/internal/scenario"
)

// MessageType is the kind of a stream message.
type MessageType string

const (
	MessageHello  MessageType = "hello"
	MessageStep   MessageType = "step"
	MessageChange MessageType = "change"
	MessageDone   MessageType = "done"
	MessageError  MessageType = "error"
)

// Message is sent to clients via WebSocket.
type Message struct {
	Type     MessageType          `json:"type"`
	Scenario string               `json:"scenario,omitempty"`
	Step     *scenario.StepResult `json:"step,omitempty"`
	Change   *scenario.Change     `json:"change,omitempty"`
	Report   *scenario.Report     `json:"report,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// defaultWriteTimeout bounds one message write to one client.
const defaultWriteTimeout = 5 * time.Second

// Hub manages WebSocket connections for the geometry stream.
type Hub struct {
	name string

	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	// writeMu serializes writes, client registration and updates of last,
	// so a new client sees each step either in its hello or as a broadcast.
	writeMu      sync.Mutex
	writeTimeout time.Duration

	last *scenario.StepResult
}

// NewHub creates a hub for the named scenario.
func NewHub(name string) *Hub {
	return &Hub{
		name:         name,
		clients:      make(map[*websocket.Conn]bool),
		writeTimeout: defaultWriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.writeMu.Lock()
	err = h.send(conn, Message{Type: MessageHello, Scenario: h.name, Step: h.Last()})
	if err == nil {
		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()
	}
	h.writeMu.Unlock()
	if err != nil {
		conn.Close()
		return
	}

	// Keep connection alive until client disconnects
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Hooks returns scenario hooks that publish to the hub.
func (h *Hub) Hooks() scenario.Hooks {
	return scenario.Hooks{
		OnStep:   h.PublishStep,
		OnChange: h.PublishChange,
	}
}

// PublishStep records s as the latest step and sends it to all clients.
func (h *Hub) PublishStep(s scenario.StepResult) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	h.last = &s
	h.mu.Unlock()
	h.broadcastLocked(Message{Type: MessageStep, Step: &s})
}

// PublishChange sends one channel change to all clients.
func (h *Hub) PublishChange(c scenario.Change) {
	h.broadcast(Message{Type: MessageChange, Change: &c})
}

// PublishDone sends the final report to all clients.
func (h *Hub) PublishDone(r *scenario.Report) {
	h.broadcast(Message{Type: MessageDone, Report: r})
}

// PublishError sends an error message to all clients.
func (h *Hub) PublishError(err error) {
	h.broadcast(Message{Type: MessageError, Error: err.Error()})
}

// Last returns the latest published step, or nil.
func (h *Hub) Last() *scenario.StepResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// broadcast sends a message to all connected clients.
func (h *Hub) broadcast(msg Message) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.broadcastLocked(msg)
}

// broadcastLocked sends msg to every client, dropping clients whose write
// fails or times out. The caller holds writeMu.
func (h *Hub) broadcastLocked(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := h.write(client, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// send marshals msg and writes it to conn. The caller holds writeMu.
func (h *Hub) send(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return h.write(conn, data)
}

func (h *Hub) write(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
