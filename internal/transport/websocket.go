package transport

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/log"
)

// WebSocketTransport broadcasts every update as JSON to all connected
// WebSocket clients. Slow clients never stall the analysis loop: Send only
// queues on a buffered channel and drops when the queue is full.
type WebSocketTransport struct {
	addr      string
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan Update
	server    *http.Server
	done      chan struct{}
	closeOnce sync.Once
}

// NewWebSocketTransport creates a WebSocketTransport listening on addr and
// starts serving immediately. Clients connect to /ws.
func NewWebSocketTransport(addr string) *WebSocketTransport {
	wst := &WebSocketTransport{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local visualization clients only
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Update, 64),
		done:      make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wst.handleWebSocket)
	wst.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Infof("Transport: WebSocket server listening on %s", addr)
		if err := wst.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Transport: WebSocket server error: %v", err)
		}
	}()
	go wst.handleBroadcasts()

	return wst
}

func (wst *WebSocketTransport) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wst.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("Transport: WebSocket upgrade failed: %v", err)
		return
	}

	wst.clientsMu.Lock()
	wst.clients[conn] = true
	total := len(wst.clients)
	wst.clientsMu.Unlock()
	log.Infof("Transport: client connected, total: %d", total)

	go func() {
		// Block until the client goes away.
		if _, _, err := conn.ReadMessage(); err != nil {
			wst.clientsMu.Lock()
			delete(wst.clients, conn)
			total := len(wst.clients)
			wst.clientsMu.Unlock()
			conn.Close()
			log.Infof("Transport: client disconnected, total: %d", total)
		}
	}()
}

func (wst *WebSocketTransport) handleBroadcasts() {
	for {
		var update Update
		select {
		case <-wst.done:
			return
		case update = <-wst.broadcast:
		}

		wst.clientsMu.Lock()
		for client := range wst.clients {
			if err := client.WriteJSON(update); err != nil {
				log.Warnf("Transport: dropping client: %v", err)
				client.Close()
				delete(wst.clients, client)
			}
		}
		wst.clientsMu.Unlock()
	}
}

// Send queues the update for broadcast. A full queue drops the update
// rather than blocking the caller; after Close the update is discarded.
func (wst *WebSocketTransport) Send(u Update) error {
	select {
	case <-wst.done:
		return nil
	default:
	}
	select {
	case wst.broadcast <- u:
	default:
	}
	return nil
}

// Close stops the broadcaster, disconnects all clients, and shuts down the
// server. Safe to call more than once.
func (wst *WebSocketTransport) Close() error {
	wst.closeOnce.Do(func() { close(wst.done) })

	wst.clientsMu.Lock()
	for client := range wst.clients {
		client.Close()
	}
	wst.clients = make(map[*websocket.Conn]bool)
	wst.clientsMu.Unlock()

	if wst.server != nil {
		return wst.server.Close()
	}
	return nil
}

var _ Transport = (*WebSocketTransport)(nil)
