package game

// Internal authoritative match state. These structs are simulation state
// only; the wire representation lives in internal/protocol and is derived
// from snapshots of this model.

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseCountdown Phase = "countdown"
	PhasePlaying   Phase = "playing"
	PhaseFinished  Phase = "finished"
	PhaseAbandoned Phase = "abandoned"
)

type Player struct {
	ID          string // match session id issued by the identity service
	DisplayName string
	Connected   bool

	X, Y       float64
	MoveX      float64 // normalized movement intent, applied by input
	MoveY      float64
	Aim        float64 // radians, rotated toward DesiredAim each tick
	DesiredAim float64

	Health int
	Lives  int
	Score  int

	Focusing bool
	Firing   bool
	Dashing  bool // display flag, self-clears a few ticks after a dash

	LastFireTick     int64
	DashLastUsedTick int64
	BombLastUsedTick int64
	DashClearTick    int64

	Charge int // ultimate charge, 0..ChargeMax

	InvincibleUntilTick int64
	DeathbombUntilTick  int64 // 0 = no pending deathbomb window
}

// Usable reports whether an ability with the given cooldown can fire now.
// An ability is usable iff currentTick - lastUsed >= cooldown.
func abilityReady(now, lastUsed int64, cooldown int64) bool {
	return now-lastUsed >= cooldown
}

func (p *Player) Invincible(tick int64) bool {
	return tick < p.InvincibleUntilTick
}

type Bullet struct {
	ID         string
	OwnerID    string
	X, Y       float64
	VX, VY     float64
	Speed      float64 // scalar speed, preserved while the velocity rotates
	AngularVel float64 // radians/second; nonzero bullets curve
	Damage     int
	Mode       BulletMode
	// Grazed marks that this bullet already granted graze charge; each
	// bullet feeds the accrual at most once.
	Grazed bool
}

type BulletMode string

const (
	BulletSpread  BulletMode = "spread"
	BulletFocused BulletMode = "focused"
	BulletSpell   BulletMode = "spell"
)

type Effect struct {
	ID          string
	OwnerID     string
	X, Y        float64
	Radius      float64 // final radius; expansion is linear over the window
	CreatedTick int64
	ExpiresTick int64
	// Damaged tracks players already hurt by this instance so progressive
	// expansion never applies damage twice.
	Damaged map[string]bool
}

// CurrentRadius returns the partial radius at the given tick. Expansion is
// linear over BombExpansionTicks starting the tick after creation.
func (e *Effect) CurrentRadius(tick int64) float64 {
	elapsed := tick - e.CreatedTick
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= BombExpansionTicks {
		return e.Radius
	}
	return e.Radius * float64(elapsed) / float64(BombExpansionTicks)
}

type SpellCard struct {
	Active               bool
	DeclarerID           string
	DefenderID           string
	StartTick            int64
	EndTick              int64
	DefenderLivesAtStart int
}

type Match struct {
	Tick    int64
	Phase   Phase
	Players map[string]*Player
	// Order preserves player insertion order; collision scanning and the
	// win check iterate in this order so results do not depend on map
	// iteration.
	Order     []string
	Bullets   []*Bullet
	Effects   []*Effect
	Countdown int64
	WinnerID  string
	Spell     SpellCard
}

func NewMatch() *Match {
	return &Match{
		Phase:   PhaseWaiting,
		Players: make(map[string]*Player),
	}
}

// AddPlayer registers a player at a spawn position. The second player spawns
// mirrored on the opposite side of the field.
func (m *Match) AddPlayer(id, name string) *Player {
	if p, ok := m.Players[id]; ok {
		p.Connected = true
		return p
	}
	x := FieldWidth * 0.25
	if len(m.Order) > 0 {
		x = FieldWidth * 0.75
	}
	p := &Player{
		ID:          id,
		DisplayName: name,
		Connected:   true,
		X:           x,
		Y:           FieldHeight / 2,
		Health:      MaxHealth,
		Lives:       StartingLives,
		// a never-used ability is off cooldown from the first tick
		DashLastUsedTick: -DashCooldownTicks,
		BombLastUsedTick: -BombCooldownTicks,
	}
	m.Players[id] = p
	m.Order = append(m.Order, id)
	return p
}

// RemovePlayer drops a player entirely. Bullets owned by the player remain
// in flight; collision guards against missing owners.
func (m *Match) RemovePlayer(id string) {
	if _, ok := m.Players[id]; !ok {
		return
	}
	delete(m.Players, id)
	for i, oid := range m.Order {
		if oid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
}

// Opponent returns the other connected player, or nil.
func (m *Match) Opponent(id string) *Player {
	for _, oid := range m.Order {
		if oid == id {
			continue
		}
		if p := m.Players[oid]; p != nil && p.Connected {
			return p
		}
	}
	return nil
}

// ConnectedCount reports how many players are currently connected.
func (m *Match) ConnectedCount() int {
	n := 0
	for _, p := range m.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

// StartCountdown arms the pre-game countdown. No game systems run until the
// countdown reaches zero and the phase flips to playing.
func (m *Match) StartCountdown() {
	m.Phase = PhaseCountdown
	m.Countdown = CountdownTicks
}

func (m *Match) removeBulletAt(i int) {
	m.Bullets = append(m.Bullets[:i], m.Bullets[i+1:]...)
}
