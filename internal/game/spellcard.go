package game

import "math"

// Spell card outcomes reported by ResolveSpellCard.
type SpellOutcome string

const (
	SpellNone     SpellOutcome = ""
	SpellSuccess  SpellOutcome = "success"  // defender lost a life
	SpellCaptured SpellOutcome = "captured" // defender survived the timer
)

// DeclareSpellCard opens the timed duel. It fails while another card is
// active or when no opposing connected player exists.
func DeclareSpellCard(m *Match, declarerID string) bool {
	if m.Spell.Active {
		return false
	}
	defender := m.Opponent(declarerID)
	if defender == nil {
		return false
	}
	m.Spell = SpellCard{
		Active:               true,
		DeclarerID:           declarerID,
		DefenderID:           defender.ID,
		StartTick:            m.Tick,
		EndTick:              m.Tick + SpellCardDurationTicks,
		DefenderLivesAtStart: defender.Lives,
	}
	return true
}

// StepSpellPattern emits the declarer's rotating rings while the card is
// active: a primary ring and a counter-rotating secondary ring, fired every
// other tick with the phase derived from elapsed ticks so the sweep is
// continuous.
func StepSpellPattern(m *Match) {
	if !m.Spell.Active {
		return
	}
	declarer, ok := m.Players[m.Spell.DeclarerID]
	if !ok || !declarer.Connected {
		return
	}
	elapsed := m.Tick - m.Spell.StartTick
	if elapsed%SpellPatternCadence != 0 {
		return
	}
	t := float64(elapsed) * TickDT
	phase := SpellPrimarySpin * t
	for i := 0; i < SpellPrimaryArms; i++ {
		angle := phase + 2*math.Pi*float64(i)/float64(SpellPrimaryArms)
		m.spawnBullet(declarer.ID, declarer.X, declarer.Y, angle, SpellBulletCurve, SpellBulletDamage, BulletSpell)
	}
	phase = SpellSecondarySpin * t
	for i := 0; i < SpellSecondaryArms; i++ {
		angle := phase + 2*math.Pi*float64(i)/float64(SpellSecondaryArms)
		m.spawnBullet(declarer.ID, declarer.X, declarer.Y, angle, -SpellBulletCurve, SpellBulletDamage, BulletSpell)
	}
}

// ResolveSpellCard checks the card once per tick. A defender life loss ends
// it as a success for the declarer; reaching the end tick ends it as
// captured and grants the defender a charge bonus. Either way the
// declarer's outstanding bullets are cleared — the pattern spirals
// indefinitely and would never self-expire.
func ResolveSpellCard(m *Match) SpellOutcome {
	if !m.Spell.Active {
		return SpellNone
	}
	defender, ok := m.Players[m.Spell.DefenderID]
	if ok && defender.Lives < m.Spell.DefenderLivesAtStart {
		endSpellCard(m)
		return SpellSuccess
	}
	if m.Tick >= m.Spell.EndTick {
		if ok {
			addCharge(defender, ChargeCaptureBonus)
		}
		endSpellCard(m)
		return SpellCaptured
	}
	return SpellNone
}

func endSpellCard(m *Match) {
	declarerID := m.Spell.DeclarerID
	kept := m.Bullets[:0]
	for _, b := range m.Bullets {
		if b.OwnerID != declarerID {
			kept = append(kept, b)
		}
	}
	m.Bullets = kept
	m.Spell = SpellCard{}
}
