package room

import (
	"github.com/umarudotdev/ft-transcendence-sub000/internal/game"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/identity"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/protocol"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/rating"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
)

// Conn is the transport handle the room writes to. The websocket client in
// this package implements it; tests use in-memory fakes.
type Conn interface {
	Send(b []byte) error
	Close() error
}

// Commands delivered through the room inbox. The room goroutine is the only
// consumer, so handling a command never races a tick.

type Join struct {
	Identity identity.Identity
	Conn     Conn
	Reply    chan JoinResult
}

type JoinResult struct {
	PlayerID string
	Err      error
}

type Input struct {
	PlayerID string
	Msg      protocol.InputMsg
}

type Ability struct {
	PlayerID string
	Slot     game.AbilitySlot
}

type Leave struct {
	PlayerID string
}

// reconnectExpired fires when a disconnected player's grace window lapses.
type reconnectExpired struct {
	PlayerID string
}

// reportSettled carries the finalized match outcome back from the reporting
// goroutine; the room goroutine turns it into the finish broadcast and the
// shutdown.
type reportSettled struct {
	Record *storage.MatchRecord
	Deltas *rating.RatingDeltas
}
