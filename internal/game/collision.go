package game

import "math"

// StepCollision scans bullets against players and returns the tick's hit and
// graze events. Bullets that hit are removed after scanning completes so
// collection indices stay stable during the scan; a bullet scores at most
// one hit per tick and never grazes the player it hit.
func StepCollision(m *Match) (hits []HitEvent, grazes []GrazeEvent) {
	var removed []int
	for i, b := range m.Bullets {
		hit := false
		for _, id := range m.Order {
			p := m.Players[id]
			if p == nil || !p.Connected || p.ID == b.OwnerID {
				continue
			}
			if p.Invincible(m.Tick) {
				continue
			}
			d := math.Hypot(b.X-p.X, b.Y-p.Y)
			if d < BulletHitRadius+PlayerHitRadius {
				hits = append(hits, HitEvent{OwnerID: b.OwnerID, PlayerID: p.ID, Damage: b.Damage})
				removed = append(removed, i)
				hit = true
				break // first matching player wins
			}
			if !hit && !b.Grazed && d < GrazeRadius {
				b.Grazed = true
				grazes = append(grazes, GrazeEvent{OwnerID: b.OwnerID, PlayerID: p.ID})
			}
		}
	}
	for j := len(removed) - 1; j >= 0; j-- {
		m.removeBulletAt(removed[j])
	}
	return hits, grazes
}
