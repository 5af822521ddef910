package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ismaalAdmin/internal/handlers"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/moderation"
)

const (
	readLimit     = 4 << 10
	readDeadline  = 120 * time.Second // extended on every pong
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	broadcastBuf  = 64
)

// boardMessage is what dashboard sockets receive for every board event.
type boardMessage struct {
	Event          moderation.EventKind    `json:"event"`
	AdminID        models.EntityID         `json:"adminId"`
	SubmissionType models.SubmissionType   `json:"submissionType"`
	ID             models.EntityID         `json:"id"`
	From           models.SubmissionStatus `json:"from,omitempty"`
	To             models.SubmissionStatus `json:"to,omitempty"`
	Notes          string                  `json:"adminNotes,omitempty"`
	Submission     *models.Submission      `json:"submission,omitempty"`
	At             time.Time               `json:"at"`
}

type Client struct {
	AdminID models.EntityID
	Socket  *websocket.Conn
}

// WebSocketManager fans board events out to connected dashboards. The
// clients map is only touched from Run.
type WebSocketManager struct {
	clients    map[*websocket.Conn]models.EntityID
	broadcast  chan boardMessage
	register   chan Client
	unregister chan *websocket.Conn
	done       chan struct{}

	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewWebSocketManager(infoLog, errorLog *log.Logger) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]models.EntityID),
		broadcast:  make(chan boardMessage, broadcastBuf),
		register:   make(chan Client),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		infoLog:    infoLog,
		errorLog:   errorLog,
	}
}

func (ws *WebSocketManager) Run(ctx context.Context) {
	defer close(ws.done)
	for {
		select {
		case <-ctx.Done():
			for conn := range ws.clients {
				_ = writeClose(conn, websocket.CloseGoingAway, "server shutting down")
				_ = conn.Close()
			}
			return

		case client := <-ws.register:
			ws.clients[client.Socket] = client.AdminID
			ws.infoLog.Printf("WS register admin=%s", client.AdminID)

		case conn := <-ws.unregister:
			if id, ok := ws.clients[conn]; ok {
				_ = conn.Close()
				delete(ws.clients, conn)
				ws.infoLog.Printf("WS unregister admin=%s", id)
			}

		case msg := <-ws.broadcast:
			for conn, id := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(msg); err != nil {
					ws.errorLog.Printf("broadcast error to=%s: %v", id, err)
					_ = conn.Close()
					delete(ws.clients, conn)
				}
			}
		}
	}
}

func (ws *WebSocketManager) add(c Client) bool {
	select {
	case ws.register <- c:
		return true
	case <-ws.done:
		return false
	}
}

func (ws *WebSocketManager) remove(conn *websocket.Conn) {
	select {
	case ws.unregister <- conn:
	case <-ws.done:
	}
}

// Publish queues a board event for every connected dashboard. Events are
// dropped when the queue is full so moderation never waits on sockets.
func (ws *WebSocketManager) Publish(adminID models.EntityID, ev moderation.Event) {
	msg := boardMessage{
		Event:          ev.Kind,
		AdminID:        adminID,
		SubmissionType: ev.Key.Type,
		ID:             ev.Key.ID,
		From:           ev.From,
		To:             ev.To,
		Notes:          ev.Notes,
		At:             ev.At,
	}
	if ev.Kind == moderation.EventStatusChanged {
		sub := ev.Submission
		msg.Submission = &sub
	}

	select {
	case ws.broadcast <- msg:
	default:
		ws.errorLog.Printf("WS queue full, dropped %s for %s", ev.Kind, ev.Key)
	}
}

// WebSocketHandler runs behind requireAdmin, so the admin is already known.
// Clients only receive; anything they send is discarded.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	admin, ok := handlers.AdminFrom(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     app.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	if !app.wsManager.add(Client{AdminID: admin.ID, Socket: conn}) {
		_ = writeClose(conn, websocket.CloseGoingAway, "server shutting down")
		_ = conn.Close()
		return
	}

	done := make(chan struct{})
	go pingLoop(app.wsManager, conn, done)
	go func() {
		defer close(done)
		defer app.wsManager.remove(conn)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

// checkOrigin admits requests without an Origin header and those from the
// configured CORS origins.
func (app *application) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range app.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// pingLoop uses WriteControl, which may run alongside the broadcast writer.
func pingLoop(ws *WebSocketManager, conn *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
				return
			}
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
