package room

import (
	"errors"
	"sync"
	"time"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/game"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/protocol"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/service"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
)

var (
	ErrRoomFull   = errors.New("room is full")
	ErrRoomClosed = errors.New("room is closed")
)

const (
	maxPlayers       = 2
	keyframeInterval = 5 * game.TickRate // full snapshot cadence, in ticks
)

// Options carries the room's collaborators and tunables.
type Options struct {
	Code             string
	Repo             storage.Repository
	Reporter         service.Reporter
	BroadcastDivisor int
	ReconnectWindow  time.Duration
	// OnEmpty is called on the room goroutine after the room shuts down.
	OnEmpty func(code string)
}

// Room owns one match. All state behind it is confined to the Run goroutine:
// commands arrive through Inbox, ticks from the internal ticker, and the two
// are never processed concurrently.
type Room struct {
	Inbox chan any

	code             string
	match            *game.Match
	clients          map[string]Conn
	sessionID        string
	repo             storage.Repository
	reporter         service.Reporter
	broadcastDivisor int
	reconnectWindow  time.Duration
	onEmpty          func(code string)

	prev      protocol.Snapshot
	startedAt time.Time
	reported  bool
	quit      chan struct{}
	stopOnce  sync.Once
}

func New(opts Options) *Room {
	if opts.BroadcastDivisor < 1 {
		opts.BroadcastDivisor = 1
	}
	return &Room{
		Inbox:            make(chan any, 256),
		code:             opts.Code,
		match:            game.NewMatch(),
		clients:          make(map[string]Conn),
		repo:             opts.Repo,
		reporter:         opts.Reporter,
		broadcastDivisor: opts.BroadcastDivisor,
		reconnectWindow:  opts.ReconnectWindow,
		onEmpty:          opts.OnEmpty,
		quit:             make(chan struct{}),
	}
}

func (r *Room) Code() string { return r.code }

// Stop is idempotent: both the finish path and the last disconnect may
// reach it.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Run is the room's scheduling loop: one fixed-interval ticker and the
// command inbox, serviced by a single goroutine so every tick runs to
// completion before the next begins.
func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			r.teardown()
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		c.Reply <- r.handleJoin(c)
	case Input:
		game.ApplyInput(r.match, c.PlayerID, game.Input{
			MoveX: c.Msg.MoveX,
			MoveY: c.Msg.MoveY,
			Aim:   c.Msg.Aim,
			Focus: c.Msg.Focus,
			Fire:  c.Msg.Fire,
		})
	case Ability:
		if !game.ActivateAbility(r.match, c.PlayerID, c.Slot) {
			logging.Info("ability not applied", logging.Fields{
				constants.LogFieldRoomCode: r.code,
				constants.LogFieldPlayerID: c.PlayerID,
				"slot":                     int(c.Slot),
			})
		}
	case Leave:
		r.handleDisconnect(c.PlayerID)
	case reconnectExpired:
		r.handleReconnectExpired(c.PlayerID)
	case reportSettled:
		r.handleReportSettled(c)
	}
}

func (r *Room) handleJoin(c Join) JoinResult {
	id := c.Identity.PlayerID
	p, known := r.match.Players[id]
	if !known && len(r.match.Order) >= maxPlayers {
		return JoinResult{Err: ErrRoomFull}
	}
	if known && p.Connected {
		// second socket for a connected player replaces the first
		if old, ok := r.clients[id]; ok {
			_ = old.Close()
		}
	}
	if r.sessionID == "" {
		r.sessionID = c.Identity.MatchSessionID
	}
	r.match.AddPlayer(id, c.Identity.DisplayName)
	r.clients[id] = c.Conn

	if b, err := protocol.Encode(protocol.MsgWelcome, protocol.WelcomeMsg{PlayerID: id, RoomCode: r.code}); err == nil {
		_ = c.Conn.Send(b)
	}
	r.sendStateTo(c.Conn)
	r.notifyOpponent(id, true)

	if r.match.Phase == game.PhaseWaiting && r.match.ConnectedCount() == maxPlayers {
		r.match.StartCountdown()
		r.startedAt = time.Now()
		logging.Info("match countdown started", logging.Fields{
			constants.LogFieldRoomCode:  r.code,
			constants.LogFieldSessionID: r.sessionID,
		})
	}
	return JoinResult{PlayerID: id}
}

// handleDisconnect keeps the player's state for the reconnection window; the
// match only abandons once that window lapses without a rejoin.
func (r *Room) handleDisconnect(playerID string) {
	p, ok := r.match.Players[playerID]
	if !ok {
		return
	}
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
		delete(r.clients, playerID)
	}
	if !p.Connected {
		return
	}
	p.Connected = false
	r.notifyOpponent(playerID, false)

	switch r.match.Phase {
	case game.PhaseWaiting:
		r.match.RemovePlayer(playerID)
		if len(r.match.Order) == 0 {
			r.Stop()
		}
	case game.PhaseCountdown, game.PhasePlaying:
		window := r.reconnectWindow
		go func() {
			time.Sleep(window)
			select {
			case r.Inbox <- reconnectExpired{PlayerID: playerID}:
			case <-r.quit:
			}
		}()
	default:
		if len(r.clients) == 0 {
			r.Stop()
		}
	}
}

func (r *Room) handleReconnectExpired(playerID string) {
	p, ok := r.match.Players[playerID]
	if !ok || p.Connected {
		return
	}
	if r.match.Phase == game.PhaseCountdown || r.match.Phase == game.PhasePlaying {
		r.match.Phase = game.PhaseAbandoned
		if winner := r.match.Opponent(playerID); winner != nil {
			r.match.WinnerID = winner.ID
		}
		logging.Info("match abandoned after reconnect window", logging.Fields{
			constants.LogFieldRoomCode: r.code,
			constants.LogFieldPlayerID: playerID,
		})
		r.Stop()
	}
}

func (r *Room) tick() {
	phase := r.match.Phase
	if phase != game.PhaseCountdown && phase != game.PhasePlaying {
		return
	}
	res := game.Step(r.match)

	if res.Spell != game.SpellNone {
		logging.Info("spell card resolved", logging.Fields{
			constants.LogFieldRoomCode: r.code,
			constants.LogFieldTick:     r.match.Tick,
			"outcome":                  string(res.Spell),
		})
	}

	if r.match.Tick%int64(r.broadcastDivisor) == 0 {
		r.broadcast()
	}

	if r.match.Phase == game.PhaseFinished {
		r.finish()
	}
}

// broadcast sends a diff against the previous snapshot, or a keyframe at
// the keyframe cadence.
func (r *Room) broadcast() {
	next := protocol.Snap(r.match)
	if r.match.Tick%keyframeInterval == 0 {
		if b, err := protocol.Encode(protocol.MsgState, next); err == nil {
			r.sendAll(b)
		}
		r.prev = next
		return
	}
	d := protocol.Diff(r.prev, next)
	r.prev = next
	if d.Empty() {
		return
	}
	if b, err := protocol.Encode(protocol.MsgDiff, d); err == nil {
		r.sendAll(b)
	}
}

// finish reports the terminal state. Only the blocking rating I/O runs off
// the room goroutine; the settled outcome comes back through the inbox so
// the broadcast and shutdown never touch room state concurrently.
func (r *Room) finish() {
	if r.reported {
		return
	}
	r.reported = true
	rec := r.buildRecord()
	r.broadcast()

	go func() {
		deltas, err := service.FinalizeMatch(r.repo, r.reporter, rec)
		if err != nil {
			logging.Error("match finalization failed", err, logging.Fields{
				constants.LogFieldRoomCode:  r.code,
				constants.LogFieldSessionID: r.sessionID,
			})
		}
		select {
		case r.Inbox <- reportSettled{Record: rec, Deltas: deltas}:
		case <-r.quit:
		}
	}()
}

func (r *Room) handleReportSettled(c reportSettled) {
	msg := protocol.FinishMsg{WinnerID: c.Record.WinnerID}
	if c.Deltas != nil {
		p1 := c.Deltas.Player1Delta
		p2 := c.Deltas.Player2Delta
		msg.Player1Delta = &p1
		msg.Player2Delta = &p2
	}
	if b, err := protocol.Encode(protocol.MsgFinish, msg); err == nil {
		r.sendAll(b)
	}
	r.Stop()
}

// teardown runs when the room stops. A match that never produced a terminal
// report gets the best-effort abandonment path.
func (r *Room) teardown() {
	if !r.reported && (r.match.Phase == game.PhasePlaying || r.match.Phase == game.PhaseCountdown || r.match.Phase == game.PhaseAbandoned) && r.sessionID != "" {
		r.reported = true
		service.AbandonMatch(r.repo, r.reporter, r.buildRecord())
	}
	for id, c := range r.clients {
		_ = c.Close()
		delete(r.clients, id)
	}
	if r.onEmpty != nil {
		r.onEmpty(r.code)
	}
}

func (r *Room) buildRecord() *storage.MatchRecord {
	rec := &storage.MatchRecord{
		SessionID: r.sessionID,
		RoomCode:  r.code,
		WinnerID:  r.match.WinnerID,
		GameType:  constants.GameTypeDuel,
		Abandoned: r.match.Phase == game.PhaseAbandoned,
	}
	if !r.startedAt.IsZero() {
		rec.DurationSeconds = int(time.Since(r.startedAt).Seconds())
	}
	for i, id := range r.match.Order {
		p := r.match.Players[id]
		if p == nil {
			continue
		}
		switch i {
		case 0:
			rec.Player1ID = p.ID
			rec.Player1Name = p.DisplayName
			rec.Player1Score = p.Score
		case 1:
			rec.Player2ID = p.ID
			rec.Player2Name = p.DisplayName
			rec.Player2Score = p.Score
		}
	}
	return rec
}

func (r *Room) sendAll(b []byte) {
	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.handleDisconnect(id)
	}
}

func (r *Room) sendStateTo(c Conn) {
	if b, err := protocol.Encode(protocol.MsgState, protocol.Snap(r.match)); err == nil {
		_ = c.Send(b)
	}
}

func (r *Room) notifyOpponent(playerID string, connected bool) {
	opp := r.match.Opponent(playerID)
	if opp == nil {
		return
	}
	c, ok := r.clients[opp.ID]
	if !ok {
		return
	}
	if b, err := protocol.Encode(protocol.MsgOpponent, protocol.OpponentMsg{PlayerID: playerID, Connected: connected}); err == nil {
		_ = c.Send(b)
	}
}
