package physics

import "github.com/jakecoffman/cp"

// Body is a character body in a World. It satisfies controller.Body.
type Body struct {
	body     *cp.Body
	shape    *cp.Shape
	ground   *cp.Shape
	listener GroundListener

	kinematic bool
	halfH     float64

	touching  bool
	grounded  bool
	groundTop float64
}

// SetListener replaces the ground listener.
func (b *Body) SetListener(l GroundListener) {
	if b == nil {
		return
	}
	b.listener = l
}

func (b *Body) Velocity() (float64, float64) {
	if b == nil || b.body == nil {
		return 0, 0
	}
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *Body) SetVelocity(x, y float64) {
	if b == nil || b.body == nil || b.kinematic {
		return
	}
	b.body.SetVelocity(x, y)
}

func (b *Body) Position() (float64, float64) {
	if b == nil || b.body == nil {
		return 0, 0
	}
	p := b.body.Position()
	return p.X, p.Y
}

func (b *Body) SetPosition(x, y float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Grounded reports whether the ground sensor touched a solid on the last step.
func (b *Body) Grounded() bool {
	return b != nil && b.grounded
}

func (b *Body) flushContact() {
	if b.touching == b.grounded {
		return
	}
	b.grounded = b.touching
	if b.grounded {
		// kinematic bodies can sink into a platform between steps
		if b.kinematic {
			x, _ := b.Position()
			b.SetPosition(x, b.groundTop+b.halfH)
		}
		if b.listener != nil {
			b.listener.OnGroundEnter()
		}
		return
	}
	if b.listener != nil {
		b.listener.OnGroundExit()
	}
}
