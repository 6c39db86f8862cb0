package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
	"github.com/FocuswithJustin/ScriptureLinks/internal/server"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// ProgressMessage is a job update broadcast to every connected client.
type ProgressMessage struct {
	Type      string                 `json:"type"`      // "progress", "complete", "error", "cancelled"
	Operation string                 `json:"operation"` // "job"
	JobID     string                 `json:"job_id,omitempty"`
	Stage     string                 `json:"stage,omitempty"`
	Progress  int                    `json:"progress"` // 0-100
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// ClientMessage is a request sent by a WebSocket client.
type ClientMessage struct {
	Type       string `json:"type"` // "parse" or "process"
	ID         string `json:"id,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Text       string `json:"text,omitempty"`
	StudyHelps bool   `json:"study_helps,omitempty"`
}

// ReplyMessage answers one ClientMessage on the sender's connection only.
type ReplyMessage struct {
	Type      string      `json:"type"` // "result" or "error"
	ID        string      `json:"id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Client represents a WebSocket client connection.
type Client struct {
	hub  *Hub
	srv  *Server
	conn *websocket.Conn
	// send carries hub broadcasts and is closed by the hub.
	send chan []byte
	// reply carries answers to this client's own requests. It is never
	// closed; writes to it never block.
	reply chan []byte
}

// Hub maintains active WebSocket connections and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			logging.WebSocketEvent("client_connected", h.attach(c))
		case c := <-h.unregister:
			logging.WebSocketEvent("client_disconnected", h.detach(c))
		case msg := <-h.broadcast:
			h.fanout(msg)
		}
	}
}

func (h *Hub) attach(c *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	return len(h.clients)
}

// detach is a no-op for clients the hub already dropped.
func (h *Hub) detach(c *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	return len(h.clients)
}

// fanout queues msg for every client. A client whose buffer is full is
// disconnected rather than allowed to stall the hub.
func (h *Hub) fanout(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	close(h.done)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast sends a progress message to all connected clients.
func (h *Hub) Broadcast(msg ProgressMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal progress message", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logging.Warn("broadcast channel full, dropping message")
	}
}

// WebSocketSecurityConfig holds WebSocket-specific security configuration.
type WebSocketSecurityConfig struct {
	// AllowedOrigins lists exact origins, "*.example.com" subdomain
	// patterns, or "*" for any origin.
	AllowedOrigins []string

	// MaxMessageRate is the maximum number of messages per second per client.
	MaxMessageRate int

	// MaxMessageSize is the maximum message size in bytes.
	MaxMessageSize int64

	// RequireAuth rejects upgrades without a valid API key.
	RequireAuth bool

	AuthConfig AuthConfig
}

// DefaultWebSocketSecurityConfig returns the configuration used when the
// server has no origin list.
func DefaultWebSocketSecurityConfig() WebSocketSecurityConfig {
	return WebSocketSecurityConfig{
		AllowedOrigins: []string{"*"},
		MaxMessageRate: 10,
		MaxMessageSize: 4096,
	}
}

// wsSecurityConfig derives the WebSocket policy from the server config.
// Messages may carry a full text, so the size cap follows MaxTextBytes.
func (s *Server) wsSecurityConfig() WebSocketSecurityConfig {
	cfg := DefaultWebSocketSecurityConfig()
	if len(s.cfg.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = s.cfg.AllowedOrigins
	}
	cfg.MaxMessageSize = int64(s.cfg.MaxTextBytes) + 4096
	cfg.RequireAuth = s.cfg.Auth.Enabled
	cfg.AuthConfig = s.cfg.Auth
	return cfg
}

// WebSocketRateLimiter tracks message rates per client. Each client gets
// a token bucket that refills at its per-second rate and bursts to twice
// that.
type WebSocketRateLimiter struct {
	clients map[*Client]*tokenBucket
	mu      sync.RWMutex
}

// NewWebSocketRateLimiter creates a new WebSocket rate limiter.
func NewWebSocketRateLimiter() *WebSocketRateLimiter {
	return &WebSocketRateLimiter{
		clients: make(map[*Client]*tokenBucket),
	}
}

// Register registers a client for rate limiting.
func (rl *WebSocketRateLimiter) Register(client *Client, messagesPerSecond int) {
	burst := float64(messagesPerSecond) * 2
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.clients[client] = &tokenBucket{
		tokens:   burst,
		capacity: burst,
		rate:     float64(messagesPerSecond),
		last:     time.Now(),
	}
}

// Unregister removes a client from rate limiting.
func (rl *WebSocketRateLimiter) Unregister(client *Client) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.clients, client)
}

// Allow reports whether a message from client fits its budget.
// Unregistered clients are denied.
func (rl *WebSocketRateLimiter) Allow(client *Client) bool {
	rl.mu.RLock()
	bucket, exists := rl.clients[client]
	rl.mu.RUnlock()

	if !exists {
		return false
	}
	ok, _, _ := bucket.take(time.Now())
	return ok
}

// CheckOriginWithConfig creates a CheckOrigin function based on security config.
func CheckOriginWithConfig(config WebSocketSecurityConfig) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		allowed := server.OriginAllowed(origin, config.AllowedOrigins)
		if !allowed {
			logging.SecurityEvent("websocket_origin_rejected", "websocket", "origin", origin)
		}
		return allowed
	}
}

// ValidateAuthForWebSocket checks authentication before the upgrade and
// returns an error message, or "" on success. Browsers cannot set headers
// on a WebSocket handshake, so the api_key query parameter is accepted too.
func ValidateAuthForWebSocket(r *http.Request, config WebSocketSecurityConfig) string {
	if !config.RequireAuth {
		return ""
	}
	if !config.AuthConfig.Enabled {
		return "Authentication required but not configured"
	}

	switch err := checkAPIKey(config.AuthConfig, r, true); {
	case errors.Is(err, ErrMissingAPIKey):
		return "Missing API key (X-API-Key header or api_key query parameter)"
	case err != nil:
		return "Invalid API key"
	}
	return ""
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	config := s.wsSecurityConfig()

	if authError := ValidateAuthForWebSocket(r, config); authError != "" {
		logging.SecurityEvent("websocket_auth_failed", "websocket",
			"reason", authError,
			"remote_addr", getClientIP(r))
		http.Error(w, fmt.Sprintf("Unauthorized: %s", authError), http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     CheckOriginWithConfig(config),
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(config.MaxMessageSize)

	client := &Client{
		hub:   s.hub,
		srv:   s,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		reply: make(chan []byte, sendBuffer),
	}
	if !s.hub.add(client) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}
	s.wsLimiter.Register(client, config.MaxMessageRate)

	logging.Debug("websocket connection established",
		"remote_addr", getClientIP(r),
		"origin", r.Header.Get("Origin"))

	go client.writePump()
	go client.readPump(s.wsLimiter)
}

// readPump reads requests, answers them on the reply channel and enforces
// the per-client message rate.
func (c *Client) readPump(rateLimiter *WebSocketRateLimiter) {
	defer func() {
		rateLimiter.Unregister(c)
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn("websocket unexpected close", "error", err)
			}
			return
		}

		if !rateLimiter.Allow(c) {
			logging.SecurityEvent("websocket_rate_limited", "websocket", "message_bytes", len(message))
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Rate limit exceeded"),
				time.Now().Add(writeWait))
			return
		}

		c.queueReply(c.handleMessage(message))
	}
}

// handleMessage answers one client request.
func (c *Client) handleMessage(raw []byte) ReplyMessage {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errorReply("", "INVALID_JSON", "Invalid JSON message")
	}

	ctx := context.Background()
	switch msg.Type {
	case "parse":
		if err := validation.ValidateReference(msg.Reference); err != nil {
			return errorReply(msg.ID, "INVALID_REQUEST", err.Error())
		}
		resp := output.Single(c.srv.parser, msg.Reference)
		if resp.Success {
			logging.ReferenceResolved(ctx, msg.Reference, resp.Parsed.Book, *resp.URL, "transport", "websocket")
		}
		return ReplyMessage{Type: "result", ID: msg.ID, Data: resp}

	case "process":
		if err := validation.ValidateText(msg.Text, c.srv.cfg.MaxTextBytes); err != nil {
			return errorReply(msg.ID, "INVALID_TEXT", err.Error())
		}
		key := processKey(msg.Text, msg.StudyHelps)
		body, _, err := c.srv.processText(ctx, msg.Text, msg.StudyHelps, key)
		if err != nil {
			return errorReply(msg.ID, "PROCESSING_FAILED", err.Error())
		}
		return ReplyMessage{Type: "result", ID: msg.ID, Data: json.RawMessage(body)}
	}
	return errorReply(msg.ID, "UNKNOWN_TYPE", fmt.Sprintf("Unknown message type %q", msg.Type))
}

func errorReply(id, code, message string) ReplyMessage {
	return ReplyMessage{Type: "error", ID: id, Error: &APIError{Code: code, Message: message}}
}

func (c *Client) queueReply(msg ReplyMessage) {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal websocket reply", "error", err)
		return
	}
	select {
	case c.reply <- data:
	default:
		logging.Warn("websocket reply buffer full, dropping reply", "id", msg.ID)
	}
}

// writePump writes one frame per message until the hub closes send.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case message := <-c.reply:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
