package game

import "testing"

func TestSpellCardDeclare(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	if !DeclareSpellCard(m, "p1") {
		t.Fatalf("declare refused")
	}
	if m.Spell.DefenderID != "p2" || m.Spell.DefenderLivesAtStart != StartingLives {
		t.Fatalf("unexpected spell state: %+v", m.Spell)
	}
	if DeclareSpellCard(m, "p2") {
		t.Fatalf("second declare accepted while one is active")
	}
}

func TestSpellCardDeclareNeedsOpponent(t *testing.T) {
	m := newPlayingMatch("p1")
	if DeclareSpellCard(m, "p1") {
		t.Fatalf("declare accepted without an opponent")
	}
	m2 := newPlayingMatch("p1", "p2")
	m2.Players["p2"].Connected = false
	if DeclareSpellCard(m2, "p1") {
		t.Fatalf("declare accepted against a disconnected opponent")
	}
}

func TestSpellCardCapturedOnTimeout(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	m.Tick = 1000
	DeclareSpellCard(m, "p1")
	if m.Spell.EndTick != 1000+SpellCardDurationTicks {
		t.Fatalf("end tick = %d, want %d", m.Spell.EndTick, 1000+SpellCardDurationTicks)
	}

	m.Tick = m.Spell.EndTick - 1
	if out := ResolveSpellCard(m); out != SpellNone {
		t.Fatalf("resolved early: %q", out)
	}
	if !m.Spell.Active {
		t.Fatalf("card inactive one tick before the end tick")
	}

	m.Tick++
	out := ResolveSpellCard(m)
	if out != SpellCaptured {
		t.Fatalf("outcome = %q, want captured", out)
	}
	if m.Spell.Active {
		t.Fatalf("card still active after resolution")
	}
	if got := m.Players["p2"].Charge; got != ChargeCaptureBonus {
		t.Fatalf("defender capture bonus = %d, want %d", got, ChargeCaptureBonus)
	}
}

func TestSpellCardSuccessOnLifeLoss(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	m.Tick = 1000
	DeclareSpellCard(m, "p1")

	m.Players["p2"].Lives--
	out := ResolveSpellCard(m)
	if out != SpellSuccess {
		t.Fatalf("outcome = %q, want success", out)
	}
	if m.Players["p2"].Charge != 0 {
		t.Fatalf("success granted the defender a bonus")
	}
}

func TestSpellCardResolutionClearsDeclarerBullets(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	m.Tick = 1000
	DeclareSpellCard(m, "p1")
	m.Bullets = append(m.Bullets,
		&Bullet{ID: "d1", OwnerID: "p1", X: 100, Y: 100, Speed: 1},
		&Bullet{ID: "d2", OwnerID: "p1", X: 200, Y: 100, Speed: 1},
		&Bullet{ID: "o1", OwnerID: "p2", X: 300, Y: 100, Speed: 1},
	)

	m.Tick = m.Spell.EndTick
	ResolveSpellCard(m)
	if len(m.Bullets) != 1 || m.Bullets[0].ID != "o1" {
		t.Fatalf("declarer bullets not cleared: %d remain", len(m.Bullets))
	}
}

func TestSpellPatternCadenceAndShape(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	m.Tick = 1000
	DeclareSpellCard(m, "p1")

	StepSpellPattern(m) // elapsed 0: fires both rings
	want := SpellPrimaryArms + SpellSecondaryArms
	if len(m.Bullets) != want {
		t.Fatalf("pattern spawned %d bullets, want %d", len(m.Bullets), want)
	}
	for _, b := range m.Bullets {
		if b.OwnerID != "p1" || b.Mode != BulletSpell || b.AngularVel == 0 {
			t.Fatalf("pattern bullet malformed: %+v", b)
		}
	}

	m.Tick++ // odd elapsed tick: cadence skips
	StepSpellPattern(m)
	if len(m.Bullets) != want {
		t.Fatalf("pattern fired off-cadence")
	}

	m.Tick++
	StepSpellPattern(m)
	if len(m.Bullets) != 2*want {
		t.Fatalf("pattern did not fire on cadence")
	}
}

func TestSpellCardSuppressesDeclarerFire(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	m.Tick = 1000
	DeclareSpellCard(m, "p1")
	p := m.Players["p1"]
	p.Firing = true

	StepFire(m)
	if len(m.Bullets) != 0 {
		t.Fatalf("declarer's normal fire not suppressed")
	}

	// The defender still fires normally.
	m.Players["p2"].Firing = true
	StepFire(m)
	if len(m.Bullets) != 5 {
		t.Fatalf("defender fire affected by the spell card: %d bullets", len(m.Bullets))
	}
}
