package component

import "time"

// Vec2 is a position in controller space (+Y up).
type Vec2 struct {
	X, Y float64
}

// ActionState is the mutable per-character aggregate driven by the
// controller tick. Flags are independent; the controller enforces the guards
// between them.
type ActionState struct {
	Form        Form
	FacingRight bool

	Position         Vec2
	VerticalVelocity float64
	HorizontalInput  float64
	IsMoving         bool
	IsGrounded       bool
	IsCrouching      bool

	// combo combat
	AttackPhase    int
	CanAttack      bool
	LastAttackTime time.Duration

	// charge combat
	IsCharging      bool
	ChargeStartTime time.Duration
	ChargeDuration  time.Duration
	AttackTier      int

	IsAttacking           bool
	LastSpecialAttackTime time.Duration
	HasSpecialAttacked    bool

	IsRolling   bool
	IsDefending bool
	IsHurt      bool
	IsJumping   bool
	IsJumpingUp bool

	CanTransform bool

	RollBuffered    bool
	SpecialBuffered bool
	JumpBuffered    bool
	AttackBuffered  bool
}

// NewActionState returns the spawn state: base form, facing right, grounded,
// free to attack and transform.
func NewActionState() ActionState {
	return ActionState{
		Form:         FormBase,
		FacingRight:  true,
		IsGrounded:   true,
		CanAttack:    true,
		CanTransform: true,
	}
}

// LocomotionBlocked reports whether an action currently owns the body.
func (s *ActionState) LocomotionBlocked() bool {
	return s.IsAttacking || s.IsRolling || s.IsHurt
}

// AnyBuffered reports whether any input buffer is set.
func (s *ActionState) AnyBuffered() bool {
	return s.RollBuffered || s.SpecialBuffered || s.JumpBuffered || s.AttackBuffered
}
