package protocol

// Delta is the diff between two consecutive snapshots. Players are small
// and few so a changed player is resent whole; bullets and effects are
// tracked by id with adds, updates and removals.
type Delta struct {
	Tick           int64            `json:"tick"`
	Phase          string           `json:"phase,omitempty"` // set only when it changed
	Countdown      int64            `json:"countdown,omitempty"`
	Players        []PlayerSnapshot `json:"players,omitempty"`
	BulletsAdded   []BulletSnapshot `json:"bullets_added,omitempty"`
	BulletsMoved   []BulletSnapshot `json:"bullets_moved,omitempty"`
	BulletsRemoved []string         `json:"bullets_removed,omitempty"`
	EffectsAdded   []EffectSnapshot `json:"effects_added,omitempty"`
	EffectsMoved   []EffectSnapshot `json:"effects_moved,omitempty"`
	EffectsRemoved []string         `json:"effects_removed,omitempty"`
	Spell          *SpellSnapshot   `json:"spell,omitempty"`
}

// Empty reports whether the delta carries nothing beyond the tick counter.
func (d Delta) Empty() bool {
	return d.Phase == "" && len(d.Players) == 0 &&
		len(d.BulletsAdded) == 0 && len(d.BulletsMoved) == 0 && len(d.BulletsRemoved) == 0 &&
		len(d.EffectsAdded) == 0 && len(d.EffectsMoved) == 0 && len(d.EffectsRemoved) == 0 &&
		d.Spell == nil
}

// Diff computes the delta from prev to next.
func Diff(prev, next Snapshot) Delta {
	d := Delta{Tick: next.Tick}
	if next.Phase != prev.Phase {
		d.Phase = next.Phase
	}
	if next.Countdown != prev.Countdown {
		d.Countdown = next.Countdown
	}

	prevPlayers := make(map[string]PlayerSnapshot, len(prev.Players))
	for _, p := range prev.Players {
		prevPlayers[p.ID] = p
	}
	for _, p := range next.Players {
		if old, ok := prevPlayers[p.ID]; !ok || old != p {
			d.Players = append(d.Players, p)
		}
	}

	prevBullets := make(map[string]BulletSnapshot, len(prev.Bullets))
	for _, b := range prev.Bullets {
		prevBullets[b.ID] = b
	}
	seen := make(map[string]bool, len(next.Bullets))
	for _, b := range next.Bullets {
		seen[b.ID] = true
		old, ok := prevBullets[b.ID]
		switch {
		case !ok:
			d.BulletsAdded = append(d.BulletsAdded, b)
		case old != b:
			d.BulletsMoved = append(d.BulletsMoved, b)
		}
	}
	for _, b := range prev.Bullets {
		if !seen[b.ID] {
			d.BulletsRemoved = append(d.BulletsRemoved, b.ID)
		}
	}

	prevEffects := make(map[string]EffectSnapshot, len(prev.Effects))
	for _, e := range prev.Effects {
		prevEffects[e.ID] = e
	}
	seenE := make(map[string]bool, len(next.Effects))
	for _, e := range next.Effects {
		seenE[e.ID] = true
		old, ok := prevEffects[e.ID]
		switch {
		case !ok:
			d.EffectsAdded = append(d.EffectsAdded, e)
		case old != e:
			d.EffectsMoved = append(d.EffectsMoved, e)
		}
	}
	for _, e := range prev.Effects {
		if !seenE[e.ID] {
			d.EffectsRemoved = append(d.EffectsRemoved, e.ID)
		}
	}

	if next.Spell != prev.Spell {
		spell := next.Spell
		d.Spell = &spell
	}
	return d
}
