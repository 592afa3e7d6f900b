package physics

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
	collisionTypeGroundSensor
)

// sensorSkin is how far below the feet the ground sensor reaches.
const sensorSkin = 0.1

// GroundListener receives ground contact transitions for one body.
type GroundListener interface {
	OnGroundEnter()
	OnGroundExit()
}

// Platform is an axis-aligned solid box in world units, +Y up.
type Platform struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BodySpec describes a character body. X and Y are the body center.
type BodySpec struct {
	X, Y          float64
	Width, Height float64
	Mass          float64
	// Kinematic bodies are positioned by their owner. They ignore gravity
	// and never push against solids; only the ground sensor reports contact.
	Kinematic bool
}

// World owns the Chipmunk space, the static platforms and the character
// bodies whose ground contact it tracks.
type World struct {
	space         *cp.Space
	handlersReady bool

	bodies       []*Body
	groundToBody map[*cp.Shape]*Body
}

// NewWorld creates a space with the given vertical gravity (negative is down).
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &World{
		space:        space,
		groundToBody: make(map[*cp.Shape]*Body),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddPlatform adds a static solid box.
func (w *World) AddPlatform(p Platform) {
	if w == nil || w.space == nil {
		return
	}
	bb := cp.BB{L: p.MinX, B: p.MinY, R: p.MaxX, T: p.MaxY}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)
}

// AddBody creates a character body with a ground sensor under its feet.
// The listener may be nil and can be attached later with SetListener.
func (w *World) AddBody(spec BodySpec, l GroundListener) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 2
	}

	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetAngle(0)
	cpBody.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})

	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	if spec.Kinematic {
		shape.SetSensor(true)
		cpBody.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	bb := cp.BB{
		L: -width * 0.45,
		B: -height/2 - sensorSkin,
		R: width * 0.45,
		T: -height / 2,
	}
	ground := cp.NewBox2(cpBody, bb, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeGroundSensor)

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.space.AddShape(ground)

	b := &Body{
		body:      cpBody,
		shape:     shape,
		ground:    ground,
		listener:  l,
		kinematic: spec.Kinematic,
		halfH:     height / 2,
	}
	w.bodies = append(w.bodies, b)
	w.groundToBody[ground] = b
	return b
}

// Step advances the simulation and then reports ground transitions.
func (w *World) Step(dt time.Duration) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.touching = false
	}
	w.space.Step(dt.Seconds())
	for _, b := range w.bodies {
		b.flushContact()
	}
}

func (w *World) setupHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		b, okA := world.groundToBody[shapeA]
		solid := shapeB
		if !okA {
			var okB bool
			b, okB = world.groundToBody[shapeB]
			if !okB {
				return true
			}
			solid = shapeA
		}
		top := solid.BB().T
		if !b.touching || top > b.groundTop {
			b.groundTop = top
		}
		b.touching = true
		return true
	}

	w.handlersReady = true
}
