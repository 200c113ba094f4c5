package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/room"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: isValidOrigin,
}

// isValidOrigin allows same-origin, non-browser and localhost clients.
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	host := originURL.Host
	return host == "localhost" || host == "127.0.0.1" ||
		strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:")
}

// RoomSocket resolves the join token, upgrades the connection and hands it
// to the room. Token rejection is fatal to the join attempt.
func (h *Handler) RoomSocket(c *gin.Context) {
	code := normalizeRoomCode(c.Param("code"))
	r := h.manager.Get(code)
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrTokenRequired})
		return
	}
	ident, err := h.identity.Resolve(c.Request.Context(), token)
	if err != nil {
		logging.Warn("join token rejected", logging.Fields{
			constants.LogFieldRoomCode: code,
			"error":                    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrTokenRejected})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldRoomCode: code})
		return
	}
	conn := room.NewWSConn(ws)

	reply := make(chan room.JoinResult, 1)
	select {
	case r.Inbox <- room.Join{Identity: *ident, Conn: conn, Reply: reply}:
	case <-time.After(5 * time.Second):
		_ = conn.Close()
		return
	}
	res := <-reply
	if res.Err != nil {
		logging.Warn("join refused", logging.Fields{
			constants.LogFieldRoomCode: code,
			constants.LogFieldPlayerID: ident.PlayerID,
			"error":                    res.Err.Error(),
		})
		_ = conn.Close()
		return
	}

	conn.ReadPump(r, res.PlayerID)
}
