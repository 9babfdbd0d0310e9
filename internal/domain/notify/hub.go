package notify

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"pet-care-tracker/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventFeedingReminder = "feedingReminder"

	writeTimeout = 5 * time.Second
)

// Message es lo que recibe cada cliente conectado.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // gorilla admite un solo writer a la vez
}

// Hub mantiene los clientes websocket vivos. No guarda mensajes: quien no está
// conectado cuando se hace Broadcast no recibe nada.
type Hub struct {
	mu       sync.Mutex
	clients  map[string]*client
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewHub: allowedOrigins vacío o con "*" acepta cualquier origen.
func NewHub(allowedOrigins []string, log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	h := &Hub{
		clients: make(map[string]*client),
		log:     log.With(map[string]any{"module": "notify"}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// ServeHTTP hace el upgrade y mantiene la conexión hasta que el cliente se va.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		h.log.Debug("websocket upgrade failed", map[string]any{"error": err})
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	h.add(c)
	defer h.drop(c)

	// Los clientes no envían nada útil; leemos solo para detectar el cierre.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast escribe msg en cada cliente y devuelve a cuántos llegó.
// Un cliente cuya escritura falla se desconecta; no hay reintento.
func (h *Hub) Broadcast(msg Message) int {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("broadcast marshal", map[string]any{"error": err})
		return 0
	}

	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	delivered := 0
	for _, c := range targets {
		if err := c.write(payload); err != nil {
			h.log.Debug("dropping websocket client", map[string]any{"client_id": c.id, "error": err})
			h.drop(c)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close desconecta a todos (shutdown).
func (h *Hub) Close() {
	h.mu.Lock()
	targets := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range targets {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket client connected", map[string]any{"client_id": c.id, "clients": n})
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // clientes que no son navegador
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}
