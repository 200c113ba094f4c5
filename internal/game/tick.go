package game

// StepResult surfaces the events a tick produced so the room can log and
// broadcast after the pure step completes.
type StepResult struct {
	Spell  SpellOutcome
	Hits   []HitEvent
	Grazes []GrazeEvent
}

// Step runs one fixed-timestep simulation tick in the mandated order. It is
// single-threaded and run-to-completion; callers must not invoke it
// concurrently for the same match.
func Step(m *Match) StepResult {
	var res StepResult
	m.Tick++

	switch m.Phase {
	case PhaseCountdown:
		m.Countdown--
		if m.Countdown <= 0 {
			m.Phase = PhasePlaying
		}
		return res
	case PhasePlaying:
		// fall through to the systems below
	default:
		return res
	}

	StepFire(m)
	StepSpellPattern(m)
	StepMovement(m, TickDT)
	res.Hits, res.Grazes = StepCollision(m)
	ApplyHits(m, res.Hits)
	GrantGrazeCharge(m, res.Grazes)
	ExpireDeathbombs(m)
	StepEffects(m)
	PurgeEffects(m)
	ClearDashFlags(m)
	res.Spell = ResolveSpellCard(m)
	CheckWin(m)
	return res
}
