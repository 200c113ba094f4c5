package game

import "math"

// Input is a player's recorded intent. It is applied immediately on receipt
// (between ticks, never concurrently with one) and read by the next tick.
type Input struct {
	MoveX float64
	MoveY float64
	Aim   float64
	Focus bool
	Fire  bool
}

// ApplyInput writes a player's intent onto their state. Non-finite values
// are dropped silently; a missing player is a no-op.
func ApplyInput(m *Match, playerID string, in Input) {
	p, ok := m.Players[playerID]
	if !ok || !p.Connected {
		return
	}
	if !finite(in.MoveX) || !finite(in.MoveY) || !finite(in.Aim) {
		return
	}
	mag := math.Hypot(in.MoveX, in.MoveY)
	if mag > 1 {
		in.MoveX /= mag
		in.MoveY /= mag
	}
	p.MoveX = in.MoveX
	p.MoveY = in.MoveY
	p.DesiredAim = in.Aim
	p.Focusing = in.Focus
	p.Firing = in.Fire
}

// AbilitySlot identifies one of the three activated abilities.
type AbilitySlot int

const (
	AbilityDash AbilitySlot = iota + 1
	AbilityBomb
	AbilityUltimate
)

// ActivateAbility routes an activation message to the matching ability and
// reports whether it applied. Unknown slots and missing players no-op.
func ActivateAbility(m *Match, playerID string, slot AbilitySlot) bool {
	p, ok := m.Players[playerID]
	if !ok || !p.Connected || m.Phase != PhasePlaying {
		return false
	}
	switch slot {
	case AbilityDash:
		return ActivateDash(m, p)
	case AbilityBomb:
		return ActivateBomb(m, p)
	case AbilityUltimate:
		return ActivateUltimate(m, p)
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
