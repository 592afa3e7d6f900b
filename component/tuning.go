package component

import "time"

// CombatMode selects the combat strategy.
type CombatMode string

const (
	CombatCombo  CombatMode = "combo"
	CombatCharge CombatMode = "charge"
)

// MovementMode selects how locomotion is integrated.
type MovementMode string

const (
	// MovementKinematic integrates position and vertical velocity directly.
	MovementKinematic MovementMode = "kinematic"
	// MovementBody drives horizontal velocity on a physics body.
	MovementBody MovementMode = "body"
)

// Tuning holds the controller's numeric parameters. Distances are world
// units, speeds are units per second and Gravity is negative (+Y up).
type Tuning struct {
	Combat   CombatMode
	Movement MovementMode

	MoveSpeed           float64
	CrouchSpeedModifier float64
	JumpHeight          float64
	Gravity             float64

	RollSpeed    float64
	RollDuration time.Duration

	BufferWindow time.Duration

	AttackCooldown time.Duration
	ComboCooldown  time.Duration

	MaxChargeTime time.Duration
	// TierDurations[i] is how long the tier i+1 charge attack lasts.
	TierDurations [3]time.Duration

	SpecialAttackCooldown time.Duration
	SpecialAttackDuration time.Duration

	HurtDuration  time.Duration
	TransformLock time.Duration
}

// DefaultTuning returns the stock values for the given combat mode. The
// charge variant moves kinematically and the combo variant uses a body.
func DefaultTuning(mode CombatMode) Tuning {
	t := Tuning{
		Combat:                mode,
		Movement:              MovementKinematic,
		MoveSpeed:             5,
		CrouchSpeedModifier:   0.5,
		JumpHeight:            2,
		Gravity:               -20,
		RollSpeed:             8,
		RollDuration:          500 * time.Millisecond,
		BufferWindow:          100 * time.Millisecond,
		AttackCooldown:        500 * time.Millisecond,
		ComboCooldown:         time.Second,
		MaxChargeTime:         2 * time.Second,
		TierDurations:         [3]time.Duration{400 * time.Millisecond, 600 * time.Millisecond, 900 * time.Millisecond},
		SpecialAttackCooldown: 2 * time.Second,
		SpecialAttackDuration: time.Second,
		HurtDuration:          500 * time.Millisecond,
		TransformLock:         500 * time.Millisecond,
	}
	if mode == CombatCombo {
		t.Movement = MovementBody
	}
	return t
}
