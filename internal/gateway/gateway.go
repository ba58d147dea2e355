// Package gateway owns the websocket edge: it authenticates each
// connection, pumps JSON envelopes both ways, and routes client
// requests to the lobby and tables.
package gateway

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"holdem-table/holdem"
	"holdem-table/internal/auth"
	"holdem-table/internal/lobby"
	"holdem-table/internal/table"
	"holdem-table/internal/wire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins in production
	},
}

// Notifier hears about connection lifecycle, for presence fan-out.
type Notifier interface {
	Connected(accountID uint64, username string)
	Disconnected(accountID uint64)
}

// Connection is one authenticated websocket client.
type Connection struct {
	AccountID uint64
	Username  string
	Conn      *websocket.Conn
	Send      chan []byte
	Gateway   *Gateway

	mu    sync.Mutex
	table *table.Table
}

type Gateway struct {
	mu        sync.RWMutex
	byAccount map[uint64]*Connection
	seq       atomic.Uint64

	lobby    *lobby.Lobby
	auth     auth.Service
	presence Notifier
}

func New(lby *lobby.Lobby, authService auth.Service, presence Notifier) *Gateway {
	return &Gateway{
		byAccount: make(map[uint64]*Connection),
		lobby:     lby,
		auth:      authService,
		presence:  presence,
	}
}

// HandleWebSocket authenticates the session token and upgrades. A new
// connection for an account displaces the previous one.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	accountID, username, ok := g.auth.ResolveSession(token)
	if !ok {
		http.Error(w, "invalid session", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	c := &Connection{
		AccountID: accountID,
		Username:  username,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		Gateway:   g,
	}

	g.mu.Lock()
	if prev := g.byAccount[accountID]; prev != nil {
		prev.Conn.Close()
	}
	g.byAccount[accountID] = c
	total := len(g.byAccount)
	g.mu.Unlock()

	log.Printf("[Gateway] Account %d (%s) connected, total: %d", accountID, username, total)
	if g.presence != nil {
		g.presence.Connected(accountID, username)
	}

	go c.readPump()
	go c.writePump()
}

func sessionToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error account %d: %v", c.AccountID, err)
			}
			break
		}
		c.handleMessage(message)
	}
}

func (c *Connection) handleMessage(data []byte) {
	env, err := wire.DecodeClient(data)
	if err != nil {
		c.sendError(1, "invalid message format")
		return
	}

	switch env.Type {
	case wire.TypeJoin:
		c.handleJoin(env)
	case wire.TypeLeave:
		c.handleLeave()
	case wire.TypeAction:
		c.handleAction(env)
	default:
		log.Printf("[Gateway] Unknown message type %q from account %d", env.Type, c.AccountID)
	}
}

func (c *Connection) handleJoin(env *wire.ClientEnvelope) {
	c.mu.Lock()
	current := c.table
	c.mu.Unlock()
	if current != nil && !current.IsClosed() {
		current.SendSnapshotTo(c.AccountID)
		return
	}

	var req wire.JoinMsg
	if err := env.DecodePayload(&req); err != nil {
		c.sendError(1, "invalid join payload")
		return
	}

	var t *table.Table
	if req.TableID != "" {
		t = c.Gateway.lobby.GetTable(req.TableID)
		if t == nil {
			c.sendError(2, "no such table")
			return
		}
		if err := t.Join(c.AccountID, c.Username); err != nil {
			c.sendError(2, err.Error())
			return
		}
	} else {
		var err error
		t, err = c.Gateway.lobby.QuickStart(c.AccountID, c.Username, c.Gateway.sendToAccount)
		if err != nil {
			c.sendError(2, err.Error())
			return
		}
	}

	c.mu.Lock()
	c.table = t
	c.mu.Unlock()

	if !t.Started() {
		if err := t.Start(); err != nil && err != table.ErrTableStarted {
			c.sendError(2, err.Error())
			return
		}
	}
	t.SendSnapshotTo(c.AccountID)
	log.Printf("[Gateway] Account %d joined table %s", c.AccountID, t.ID)
}

func (c *Connection) handleLeave() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
}

func (c *Connection) handleAction(env *wire.ClientEnvelope) {
	c.mu.Lock()
	t := c.table
	c.mu.Unlock()
	if t == nil {
		c.sendError(3, "not at a table")
		return
	}

	var req wire.ActionMsg
	if err := env.DecodePayload(&req); err != nil {
		c.sendError(1, "invalid action payload")
		return
	}
	kind, ok := wire.ParseActionKind(req.Kind)
	if !ok {
		c.sendError(4, "unknown action kind")
		return
	}

	action := holdem.Action{Kind: kind, Amount: req.Amount}
	if err := t.SubmitAction(c.AccountID, action); err != nil {
		c.sendError(5, err.Error())
	}
}

func (c *Connection) sendError(code int, msg string) {
	env, err := wire.NewServer("", c.Gateway.seq.Add(1), wire.TypeError, wire.ErrorMsg{
		Code:    code,
		Message: msg,
	})
	if err != nil {
		return
	}
	data, err := env.Encode()
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	if g.byAccount[c.AccountID] == c {
		delete(g.byAccount, c.AccountID)
	}
	total := len(g.byAccount)
	g.mu.Unlock()

	log.Printf("[Gateway] Account %d disconnected, total: %d", c.AccountID, total)
	if g.presence != nil {
		g.presence.Disconnected(c.AccountID)
	}
}

// sendToAccount delivers one frame to the account's live connection,
// dropping it when the client cannot keep up.
func (g *Gateway) sendToAccount(accountID uint64, data []byte) {
	g.mu.RLock()
	c := g.byAccount[accountID]
	g.mu.RUnlock()

	if c != nil {
		select {
		case c.Send <- data:
		default:
		}
	}
}
