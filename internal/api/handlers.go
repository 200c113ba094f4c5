package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/identity"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/room"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/version"
)

const (
	historyLimit     = 50
	leaderboardLimit = 20
)

// Handler wires the HTTP surface to the room manager and the read-side
// repository.
type Handler struct {
	manager  *room.Manager
	repo     storage.Repository
	identity *identity.Client
}

func NewHandler(manager *room.Manager, repo storage.Repository, idc *identity.Client) *Handler {
	return &Handler{manager: manager, repo: repo, identity: idc}
}

// CreateRoom allocates a fresh room and returns its join code.
func (h *Handler) CreateRoom(c *gin.Context) {
	for attempt := 0; attempt < 5; attempt++ {
		code := generateRoomCode()
		if _, ok := h.manager.Create(code); ok {
			c.JSON(http.StatusCreated, gin.H{constants.JSONKeyCode: code})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRoom})
}

// JoinRoom validates that a room code refers to a live room. The actual
// join happens on the websocket route.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeRoomCode(req.Code)
	if !roomCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if h.manager.Get(code) == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyCode: code})
}

// ListMatches returns the most recent finished matches.
func (h *Handler) ListMatches(c *gin.Context) {
	recs, err := h.repo.ListRecentMatches(historyLimit)
	if err != nil {
		logging.Error("failed to list matches", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Leaderboard returns aggregate player standings.
func (h *Handler) Leaderboard(c *gin.Context) {
	stats, err := h.repo.Leaderboard(leaderboardLimit)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Healthz reports liveness and the build version.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus: "ok",
		"version":               version.Version,
	})
}
