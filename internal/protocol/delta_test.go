package protocol

import (
	"testing"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/game"
)

func twoPlayerSnapshot() Snapshot {
	m := game.NewMatch()
	m.AddPlayer("p1", "P1")
	m.AddPlayer("p2", "P2")
	m.Phase = game.PhasePlaying
	return Snap(m)
}

func TestDiffEmptyWhenNothingChanged(t *testing.T) {
	s := twoPlayerSnapshot()
	d := Diff(s, s)
	if !d.Empty() {
		t.Fatalf("diff of identical snapshots not empty: %+v", d)
	}
}

func TestDiffTracksPlayerChanges(t *testing.T) {
	prev := twoPlayerSnapshot()
	next := twoPlayerSnapshot()
	next.Players[0].X += 5

	d := Diff(prev, next)
	if len(d.Players) != 1 || d.Players[0].ID != prev.Players[0].ID {
		t.Fatalf("expected one changed player, got %+v", d.Players)
	}
	if len(d.BulletsAdded)+len(d.BulletsRemoved) != 0 {
		t.Fatalf("bullet churn in a player-only diff")
	}
}

func TestDiffTracksBulletLifecycle(t *testing.T) {
	prev := twoPlayerSnapshot()
	prev.Bullets = []BulletSnapshot{
		{ID: "keep", Owner: "p1", X: 10},
		{ID: "gone", Owner: "p1", X: 20},
	}
	next := twoPlayerSnapshot()
	next.Bullets = []BulletSnapshot{
		{ID: "keep", Owner: "p1", X: 15},
		{ID: "new", Owner: "p2", X: 30},
	}

	d := Diff(prev, next)
	if len(d.BulletsAdded) != 1 || d.BulletsAdded[0].ID != "new" {
		t.Fatalf("added = %+v", d.BulletsAdded)
	}
	if len(d.BulletsMoved) != 1 || d.BulletsMoved[0].ID != "keep" {
		t.Fatalf("moved = %+v", d.BulletsMoved)
	}
	if len(d.BulletsRemoved) != 1 || d.BulletsRemoved[0] != "gone" {
		t.Fatalf("removed = %+v", d.BulletsRemoved)
	}
}

func TestDiffTracksPhaseAndSpell(t *testing.T) {
	prev := twoPlayerSnapshot()
	next := twoPlayerSnapshot()
	next.Phase = string(game.PhaseFinished)
	next.Spell = SpellSnapshot{Active: true, DeclarerID: "p1", EndTick: 480}

	d := Diff(prev, next)
	if d.Phase != string(game.PhaseFinished) {
		t.Fatalf("phase change not captured: %q", d.Phase)
	}
	if d.Spell == nil || !d.Spell.Active || d.Spell.DeclarerID != "p1" {
		t.Fatalf("spell change not captured: %+v", d.Spell)
	}
}

func TestSnapProjectsMatchState(t *testing.T) {
	m := game.NewMatch()
	m.AddPlayer("p1", "P1")
	m.AddPlayer("p2", "P2")
	m.Phase = game.PhasePlaying
	m.Bullets = append(m.Bullets, &game.Bullet{ID: "b1", OwnerID: "p1", X: 1, Speed: 1, Mode: game.BulletSpread})

	s := Snap(m)
	if len(s.Players) != 2 || s.Players[0].ID != "p1" || s.Players[1].ID != "p2" {
		t.Fatalf("player projection wrong: %+v", s.Players)
	}
	if len(s.Bullets) != 1 || s.Bullets[0].Mode != string(game.BulletSpread) {
		t.Fatalf("bullet projection wrong: %+v", s.Bullets)
	}
}
