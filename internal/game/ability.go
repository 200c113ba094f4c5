package game

import (
	"math"

	"github.com/google/uuid"
)

// ActivateDash repositions the player by a fixed distance along their
// current movement direction, or along their aim when stationary. Returns
// false when the ability is still cooling down.
func ActivateDash(m *Match, p *Player) bool {
	if !abilityReady(m.Tick, p.DashLastUsedTick, DashCooldownTicks) {
		return false
	}
	p.DashLastUsedTick = m.Tick

	dx, dy := p.MoveX, p.MoveY
	if dx == 0 && dy == 0 {
		dx = math.Cos(p.Aim)
		dy = math.Sin(p.Aim)
	} else {
		mag := math.Hypot(dx, dy)
		dx /= mag
		dy /= mag
	}
	p.X = clamp(p.X+dx*DashDistance, 0, FieldWidth)
	p.Y = clamp(p.Y+dy*DashDistance, 0, FieldHeight)
	p.InvincibleUntilTick = m.Tick + DashInvincibleTicks
	p.Dashing = true
	p.DashClearTick = m.Tick + DashDisplayTicks
	return true
}

// ActivateBomb spawns an expanding area effect. Inside an open deathbomb
// window the cooldown gate is bypassed and the pending death is canceled.
func ActivateBomb(m *Match, p *Player) bool {
	deathbombing := p.DeathbombUntilTick > 0 && m.Tick < p.DeathbombUntilTick
	if !deathbombing && !abilityReady(m.Tick, p.BombLastUsedTick, BombCooldownTicks) {
		return false
	}
	p.BombLastUsedTick = m.Tick
	if deathbombing {
		p.DeathbombUntilTick = 0
		p.Health = MaxHealth
		p.InvincibleUntilTick = m.Tick + RespawnInvincibleTicks
	}
	m.Effects = append(m.Effects, &Effect{
		ID:          uuid.NewString(),
		OwnerID:     p.ID,
		X:           p.X,
		Y:           p.Y,
		Radius:      BombRadius,
		CreatedTick: m.Tick,
		ExpiresTick: m.Tick + BombEffectLifeTicks,
		Damaged:     make(map[string]bool),
	})
	return true
}

// ActivateUltimate consumes a full charge bar and attempts to declare a
// spell card. The charge is spent even when the declaration fails because
// one is already active.
func ActivateUltimate(m *Match, p *Player) bool {
	if p.Charge < ChargeMax {
		return false
	}
	p.Charge = 0
	DeclareSpellCard(m, p.ID)
	return true
}

// StepEffects advances every active effect's expansion: bullets owned by
// others inside the current partial radius are cleared, and each opposing
// player inside it is damaged exactly once per effect instance.
func StepEffects(m *Match) {
	for _, e := range m.Effects {
		r := e.CurrentRadius(m.Tick)
		if r <= 0 {
			continue
		}
		for i := len(m.Bullets) - 1; i >= 0; i-- {
			b := m.Bullets[i]
			if b.OwnerID == e.OwnerID {
				continue
			}
			if math.Hypot(b.X-e.X, b.Y-e.Y) <= r {
				m.removeBulletAt(i)
			}
		}
		for _, id := range m.Order {
			p := m.Players[id]
			if p == nil || !p.Connected || p.ID == e.OwnerID {
				continue
			}
			if e.Damaged[p.ID] {
				continue
			}
			if math.Hypot(p.X-e.X, p.Y-e.Y) <= r {
				e.Damaged[p.ID] = true
				if ApplyDirectDamage(m, p, BombDamage) {
					if owner, ok := m.Players[e.OwnerID]; ok {
						addCharge(owner, BombDamage*ChargePerDamage)
					}
				}
			}
		}
	}
}

// PurgeEffects drops effects past their expiry tick.
func PurgeEffects(m *Match) {
	kept := m.Effects[:0]
	for _, e := range m.Effects {
		if m.Tick < e.ExpiresTick {
			kept = append(kept, e)
		}
	}
	m.Effects = kept
}

// ClearDashFlags clears the dash display flag once its window elapsed.
func ClearDashFlags(m *Match) {
	for _, p := range m.Players {
		if p.Dashing && m.Tick >= p.DashClearTick {
			p.Dashing = false
		}
	}
}
