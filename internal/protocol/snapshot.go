package protocol

import (
	"github.com/umarudotdev/ft-transcendence-sub000/internal/game"
)

// Snapshot is the wire-facing projection of match state. The simulation
// model never crosses the room boundary directly; rooms take snapshots and
// send diffs between consecutive ones.

type PlayerSnapshot struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Aim        float64 `json:"aim"`
	Health     int     `json:"hp"`
	Lives      int     `json:"lives"`
	Score      int     `json:"score"`
	Charge     int     `json:"charge"`
	Focusing   bool    `json:"focusing"`
	Dashing    bool    `json:"dashing"`
	Invincible bool    `json:"invincible"`
	Connected  bool    `json:"connected"`
}

type BulletSnapshot struct {
	ID    string  `json:"id"`
	Owner string  `json:"owner"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Mode  string  `json:"mode"`
}

type EffectSnapshot struct {
	ID     string  `json:"id"`
	Owner  string  `json:"owner"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"` // current (partial) radius
}

type SpellSnapshot struct {
	Active     bool   `json:"active"`
	DeclarerID string `json:"declarer_id,omitempty"`
	EndTick    int64  `json:"end_tick,omitempty"`
}

type Snapshot struct {
	Tick      int64            `json:"tick"`
	Phase     string           `json:"phase"`
	Countdown int64            `json:"countdown,omitempty"`
	Players   []PlayerSnapshot `json:"players"`
	Bullets   []BulletSnapshot `json:"bullets"`
	Effects   []EffectSnapshot `json:"effects"`
	Spell     SpellSnapshot    `json:"spell"`
}

// Snap projects the match into a snapshot. Player order follows insertion
// order so diffs are stable.
func Snap(m *game.Match) Snapshot {
	s := Snapshot{
		Tick:      m.Tick,
		Phase:     string(m.Phase),
		Countdown: m.Countdown,
		Players:   make([]PlayerSnapshot, 0, len(m.Order)),
		Bullets:   make([]BulletSnapshot, 0, len(m.Bullets)),
		Effects:   make([]EffectSnapshot, 0, len(m.Effects)),
		Spell: SpellSnapshot{
			Active:     m.Spell.Active,
			DeclarerID: m.Spell.DeclarerID,
			EndTick:    m.Spell.EndTick,
		},
	}
	for _, id := range m.Order {
		p := m.Players[id]
		if p == nil {
			continue
		}
		s.Players = append(s.Players, PlayerSnapshot{
			ID:         p.ID,
			Name:       p.DisplayName,
			X:          p.X,
			Y:          p.Y,
			Aim:        p.Aim,
			Health:     p.Health,
			Lives:      p.Lives,
			Score:      p.Score,
			Charge:     p.Charge,
			Focusing:   p.Focusing,
			Dashing:    p.Dashing,
			Invincible: p.Invincible(m.Tick),
			Connected:  p.Connected,
		})
	}
	for _, b := range m.Bullets {
		s.Bullets = append(s.Bullets, BulletSnapshot{
			ID:    b.ID,
			Owner: b.OwnerID,
			X:     b.X,
			Y:     b.Y,
			VX:    b.VX,
			VY:    b.VY,
			Mode:  string(b.Mode),
		})
	}
	for _, e := range m.Effects {
		s.Effects = append(s.Effects, EffectSnapshot{
			ID:     e.ID,
			Owner:  e.OwnerID,
			X:      e.X,
			Y:      e.Y,
			Radius: e.CurrentRadius(m.Tick),
		})
	}
	return s
}
