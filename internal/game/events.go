package game

// HitEvent records a bullet striking a player. The bullet owner is carried
// so combat can grant ultimate charge for damage dealt.
type HitEvent struct {
	OwnerID  string
	PlayerID string
	Damage   int
}

// GrazeEvent records a near miss used only for ultimate charge accrual.
type GrazeEvent struct {
	OwnerID  string
	PlayerID string
}
