package game

import (
	"math"
	"testing"
)

func TestApplyInputNormalizesMovement(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	ApplyInput(m, "p1", Input{MoveX: 3, MoveY: 4, Aim: 1.5, Focus: true, Fire: true})

	p := m.Players["p1"]
	if mag := math.Hypot(p.MoveX, p.MoveY); math.Abs(mag-1) > 1e-9 {
		t.Fatalf("movement intent not normalized: %f", mag)
	}
	if p.DesiredAim != 1.5 || !p.Focusing || !p.Firing {
		t.Fatalf("intent fields not applied: %+v", p)
	}
}

func TestApplyInputDropsNonFinite(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	ApplyInput(m, "p1", Input{MoveX: 1})
	ApplyInput(m, "p1", Input{MoveX: math.NaN(), MoveY: 1})

	if m.Players["p1"].MoveX != 1 {
		t.Fatalf("non-finite input overwrote intent")
	}
}

func TestApplyInputMissingPlayerNoOp(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	ApplyInput(m, "ghost", Input{MoveX: 1}) // must not panic
}

func TestActivateAbilityRouting(t *testing.T) {
	m := newPlayingMatch("p1", "p2")
	m.Tick = DashCooldownTicks

	if !ActivateAbility(m, "p1", AbilityDash) {
		t.Fatalf("dash slot not routed")
	}
	if ActivateAbility(m, "p1", AbilitySlot(99)) {
		t.Fatalf("unknown slot applied")
	}
	if ActivateAbility(m, "ghost", AbilityDash) {
		t.Fatalf("missing player applied an ability")
	}

	m.Phase = PhaseWaiting
	if ActivateAbility(m, "p2", AbilityDash) {
		t.Fatalf("ability applied outside the playing phase")
	}
}
