package game

import "math"

const (
	TickRate = 60  // simulation ticks per second
	TickDT   = 1.0 / float64(TickRate)

	FieldWidth       = 800.0
	FieldHeight      = 600.0
	BulletCullMargin = 50.0 // bullets this far outside the field are removed

	PlayerHitRadius = 10.0
	BulletHitRadius = 4.0
	GrazeRadius     = 28.0 // center distance, strictly larger than hit sum

	MoveSpeed       = 240.0 // units per second
	FocusSpeedMult  = 0.5   // movement multiplier while focusing
	AimTurnRate     = 10.0  // radians per second toward desired aim

	MaxHealth     = 100
	StartingLives = 3

	FireCooldownTicks        = 6  // unfocused: 5-bullet spread
	FocusedFireCooldownTicks = 12 // focused: single heavy bullet
	SpreadBulletDamage       = 4
	FocusedBulletDamage      = 12
	PlayerBulletSpeed        = 360.0
	SpreadInnerAngle         = 0.12 // radians off the aim axis
	SpreadOuterAngle         = 0.26
	SpreadInnerCurve         = 0.6 // radians/second of angular velocity
	SpreadOuterCurve         = 1.8

	DashCooldownTicks     = 8 * TickRate // reposition
	DashDistance          = 120.0
	DashInvincibleTicks   = 30
	DashDisplayTicks      = 6

	BombCooldownTicks    = 12 * TickRate // area effect
	BombRadius           = 150.0
	BombExpansionTicks   = 12
	BombDamage           = 30
	BombEffectLifeTicks  = 45 // visual lifetime; expansion finishes earlier

	DeathbombWindowTicks  = 15
	RespawnInvincibleTicks = 3 * TickRate

	ChargeMax         = 100
	ChargePerGraze    = 2
	ChargePerDamage   = 1 // per point of damage dealt
	ChargeCaptureBonus = 25 // defender bonus for surviving a spell card

	SpellCardDurationTicks = 8 * TickRate
	SpellPatternCadence    = 2 // pattern fires every Nth tick
	SpellPrimaryArms       = 8
	SpellSecondaryArms     = 6
	SpellPrimarySpin       = 2.4  // radians/second, primary ring
	SpellSecondarySpin     = -1.7 // opposite direction
	SpellBulletSpeed       = 150.0
	SpellBulletCurve       = 0.35
	SpellBulletDamage      = 8

	CountdownTicks = 3 * TickRate
)

// shortestArc returns the signed smallest rotation from a to b in (-pi, pi].
func shortestArc(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
