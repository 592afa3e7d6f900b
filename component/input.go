package component

// Input is the per-tick input snapshot consumed by the character controller.
// Pressed/Released fields are single-tick edges; Held fields are level
// signals.
type Input struct {
	// MoveX and MoveY are axis values in [-1, 1].
	MoveX float64
	MoveY float64

	Crouch bool

	JumpPressed bool
	JumpHeld    bool

	AttackPressed  bool
	AttackHeld     bool
	AttackReleased bool

	SpecialPressed bool
	DefendHeld     bool
	RollPressed    bool

	// FormSelect is 1..5 on the tick a form key is pressed, 0 otherwise.
	FormSelect int
}
