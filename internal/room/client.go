package room

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/game"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/protocol"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 50 * time.Second // must stay below wsReadTimeout
)

// WSConn adapts a gorilla websocket connection to the room's Conn
// interface. Writes are serialized; reads run on a dedicated pump that
// feeds decoded commands into the room inbox.
type WSConn struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

func NewWSConn(ws *websocket.Conn) *WSConn {
	return &WSConn{ws: ws, done: make(chan struct{})}
}

func (c *WSConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

func (c *WSConn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.ws.Close()
	})
	return err
}

// ReadPump decodes client messages and forwards them to the room until the
// socket closes, then delivers the Leave. Malformed messages are dropped
// silently per the input contract.
func (c *WSConn) ReadPump(r *Room, playerID string) {
	defer func() {
		select {
		case r.Inbox <- Leave{PlayerID: playerID}:
		case <-time.After(time.Second):
		}
		_ = c.Close()
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})
	go c.pingLoop()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		switch env.Type {
		case protocol.MsgInput:
			var in protocol.InputMsg
			if err := json.Unmarshal(env.Data, &in); err != nil {
				continue
			}
			select {
			case r.Inbox <- Input{PlayerID: playerID, Msg: in}:
			default: // room backlogged; stale intent is droppable
			}
		case protocol.MsgAbility:
			var ab protocol.AbilityMsg
			if err := json.Unmarshal(env.Data, &ab); err != nil {
				continue
			}
			if ab.Slot < int(game.AbilityDash) || ab.Slot > int(game.AbilityUltimate) {
				continue
			}
			select {
			case r.Inbox <- Ability{PlayerID: playerID, Slot: game.AbilitySlot(ab.Slot)}:
			case <-c.done:
				return
			}
		}
	}
}

func (c *WSConn) pingLoop() {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
