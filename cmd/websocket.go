package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteDeadline = 5 * time.Second
	wsPingInterval  = 15 * time.Second
	wsReadDeadline  = 120 * time.Second
)

type wsEvent struct {
	email   string
	payload interface{}
}

type wsClient struct {
	email  string
	socket *websocket.Conn
}

type wsUnreg struct {
	email string
	conn  *websocket.Conn
}

// WebSocketManager pushes approval/rejection events to connected employees.
// Connections are keyed by the verified principal email; all access to the
// clients map happens on the Run goroutine.
type WebSocketManager struct {
	clients    map[string]*websocket.Conn
	events     chan wsEvent
	register   chan wsClient
	unregister chan wsUnreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*websocket.Conn),
		events:     make(chan wsEvent, 16),
		register:   make(chan wsClient),
		unregister: make(chan wsUnreg),
	}
}

func (ws *WebSocketManager) Run() {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-ws.register:
			if old, ok := ws.clients[client.email]; ok && old != nil && old != client.socket {
				_ = old.Close()
			}
			ws.clients[client.email] = client.socket
			log.Printf("WS register %s", client.email)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.email]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.email)
				log.Printf("WS unregister %s", u.email)
			}

		case ev := <-ws.events:
			conn, ok := ws.clients[ev.email]
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteJSON(ev.payload); err != nil {
				log.Printf("WS send to %s: %v", ev.email, err)
				_ = conn.Close()
				delete(ws.clients, ev.email)
			}

		case <-ticker.C:
			for email, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					_ = conn.Close()
					delete(ws.clients, email)
				}
			}
		}
	}
}

// Notify implements handlers.Notifier. Non-blocking: if the event buffer is
// full the event is dropped rather than stalling an approval response.
func (ws *WebSocketManager) Notify(email string, payload interface{}) {
	select {
	case ws.events <- wsEvent{email: email, payload: payload}:
	default:
		log.Printf("WS event dropped for %s", email)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades the connection for the authenticated principal.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	email, _ := r.Context().Value("email").(string)
	if email == "" {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	})

	app.wsManager.register <- wsClient{email: email, socket: conn}

	go func() {
		defer func() {
			app.wsManager.unregister <- wsUnreg{email: email, conn: conn}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
