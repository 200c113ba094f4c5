package game

import (
	"math"

	"github.com/google/uuid"
)

// StepFire spawns bullets for every connected player holding fire. The
// active spell card declarer is suppressed; their pattern replaces normal
// shots. Cadence and shape depend on the focus state: focused fire is a
// slower single heavy bullet, unfocused fire a faster 5-bullet spread.
func StepFire(m *Match) {
	for _, id := range m.Order {
		p := m.Players[id]
		if p == nil || !p.Connected || !p.Firing {
			continue
		}
		if m.Spell.Active && m.Spell.DeclarerID == p.ID {
			continue
		}
		cooldown := int64(FireCooldownTicks)
		if p.Focusing {
			cooldown = FocusedFireCooldownTicks
		}
		if m.Tick-p.LastFireTick < cooldown {
			continue
		}
		p.LastFireTick = m.Tick
		if p.Focusing {
			m.spawnBullet(p.ID, p.X, p.Y, p.Aim, 0, FocusedBulletDamage, BulletFocused)
			continue
		}
		// Straight center shot, two gently curving inner shots, two widely
		// curving outer shots. The curve is carried by angular velocity so
		// the bullets bend over their lifetime.
		m.spawnBullet(p.ID, p.X, p.Y, p.Aim, 0, SpreadBulletDamage, BulletSpread)
		m.spawnBullet(p.ID, p.X, p.Y, p.Aim-SpreadInnerAngle, SpreadInnerCurve, SpreadBulletDamage, BulletSpread)
		m.spawnBullet(p.ID, p.X, p.Y, p.Aim+SpreadInnerAngle, -SpreadInnerCurve, SpreadBulletDamage, BulletSpread)
		m.spawnBullet(p.ID, p.X, p.Y, p.Aim-SpreadOuterAngle, SpreadOuterCurve, SpreadBulletDamage, BulletSpread)
		m.spawnBullet(p.ID, p.X, p.Y, p.Aim+SpreadOuterAngle, -SpreadOuterCurve, SpreadBulletDamage, BulletSpread)
	}
}

func (m *Match) spawnBullet(owner string, x, y, angle, angularVel float64, damage int, mode BulletMode) {
	speed := PlayerBulletSpeed
	if mode == BulletSpell {
		speed = SpellBulletSpeed
	}
	m.Bullets = append(m.Bullets, &Bullet{
		ID:         uuid.NewString(),
		OwnerID:    owner,
		X:          x,
		Y:          y,
		VX:         math.Cos(angle) * speed,
		VY:         math.Sin(angle) * speed,
		Speed:      speed,
		AngularVel: angularVel,
		Damage:     damage,
		Mode:       mode,
	})
}

// ApplyHits applies the tick's hit events: damage to the target and ultimate
// charge to the bullet owner, one charge point per damage point dealt.
func ApplyHits(m *Match, hits []HitEvent) {
	for _, h := range hits {
		target, ok := m.Players[h.PlayerID]
		if !ok {
			continue
		}
		if !damagePlayer(m, target, h.Damage, true) {
			continue
		}
		if owner, ok := m.Players[h.OwnerID]; ok {
			addCharge(owner, h.Damage*ChargePerDamage)
		}
	}
}

// GrantGrazeCharge converts the tick's graze events into ultimate charge.
func GrantGrazeCharge(m *Match, grazes []GrazeEvent) {
	for _, g := range grazes {
		if p, ok := m.Players[g.PlayerID]; ok {
			addCharge(p, ChargePerGraze)
		}
	}
}

// ApplyDirectDamage damages a player without a deathbomb grace window. Used
// by area effects. Reports whether the damage landed.
func ApplyDirectDamage(m *Match, p *Player, damage int) bool {
	return damagePlayer(m, p, damage, false)
}

// damagePlayer subtracts health and handles lethal damage, reporting whether
// the damage landed. With a deathbomb allowed and the player's bomb off
// cooldown, death is deferred: health pins at 0, a grace window opens, and
// the player is briefly invincible so they can bomb out of it. Otherwise the
// death is immediate.
func damagePlayer(m *Match, p *Player, damage int, allowDeathbomb bool) bool {
	if p.Health <= 0 && p.DeathbombUntilTick > 0 {
		// already dying; the open window absorbs further hits
		return false
	}
	p.Health -= damage
	if p.Health > 0 {
		return true
	}
	p.Health = 0
	if allowDeathbomb && abilityReady(m.Tick, p.BombLastUsedTick, BombCooldownTicks) {
		p.DeathbombUntilTick = m.Tick + DeathbombWindowTicks
		p.InvincibleUntilTick = m.Tick + DeathbombWindowTicks
		return true
	}
	loseLife(m, p)
	return true
}

// ExpireDeathbombs finalizes any deathbomb window that elapsed without being
// canceled by the area ability.
func ExpireDeathbombs(m *Match) {
	for _, id := range m.Order {
		p := m.Players[id]
		if p == nil || p.DeathbombUntilTick == 0 {
			continue
		}
		if m.Tick >= p.DeathbombUntilTick {
			p.DeathbombUntilTick = 0
			loseLife(m, p)
		}
	}
}

// loseLife decrements lives and respawns the player with full health and an
// invincibility window when lives remain. Health stays at 0 on the last
// life.
func loseLife(m *Match, p *Player) {
	if p.Lives <= 0 {
		return
	}
	p.Lives--
	p.DeathbombUntilTick = 0
	if p.Lives > 0 {
		p.Health = MaxHealth
		p.InvincibleUntilTick = m.Tick + RespawnInvincibleTicks
	}
	if killer := m.Opponent(p.ID); killer != nil {
		killer.Score++
	}
}

// CheckWin finishes the match once a player is out of lives; the other
// connected player wins.
func CheckWin(m *Match) {
	if m.Phase != PhasePlaying {
		return
	}
	for _, id := range m.Order {
		p := m.Players[id]
		if p == nil || p.Lives > 0 {
			continue
		}
		m.Phase = PhaseFinished
		if winner := m.Opponent(p.ID); winner != nil {
			m.WinnerID = winner.ID
		}
		return
	}
}

func addCharge(p *Player, amount int) {
	p.Charge += amount
	if p.Charge > ChargeMax {
		p.Charge = ChargeMax
	}
}
