package game

import "math"

// StepMovement advances player and bullet positions by dt seconds and culls
// bullets that left the field by more than the cull margin. No other state
// is touched here.
func StepMovement(m *Match, dt float64) {
	for _, id := range m.Order {
		p := m.Players[id]
		if p == nil || !p.Connected {
			continue
		}
		// Rotate current aim toward desired aim, shortest arc, capped at
		// the turn rate.
		diff := shortestArc(p.Aim, p.DesiredAim)
		maxTurn := AimTurnRate * dt
		if diff > maxTurn {
			diff = maxTurn
		} else if diff < -maxTurn {
			diff = -maxTurn
		}
		p.Aim += diff

		speed := MoveSpeed
		if p.Focusing {
			speed *= FocusSpeedMult
		}
		p.X = clamp(p.X+p.MoveX*speed*dt, 0, FieldWidth)
		p.Y = clamp(p.Y+p.MoveY*speed*dt, 0, FieldHeight)
	}

	for i := len(m.Bullets) - 1; i >= 0; i-- {
		b := m.Bullets[i]
		if b.AngularVel != 0 {
			rotateVelocity(b, b.AngularVel*dt)
		}
		b.X += b.VX * dt
		b.Y += b.VY * dt
		if b.X < -BulletCullMargin || b.X > FieldWidth+BulletCullMargin ||
			b.Y < -BulletCullMargin || b.Y > FieldHeight+BulletCullMargin {
			m.removeBulletAt(i)
		}
	}
}

// rotateVelocity turns the bullet's velocity vector by the given angle while
// preserving its stored scalar speed.
func rotateVelocity(b *Bullet, angle float64) {
	cur := math.Atan2(b.VY, b.VX) + angle
	b.VX = math.Cos(cur) * b.Speed
	b.VY = math.Sin(cur) * b.Speed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
