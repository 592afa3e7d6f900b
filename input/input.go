package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/echoform/component"
)

const stickDeadzone = 0.2

var formKeys = [component.FormCount]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
}

var formButtons = [component.FormCount]ebiten.StandardGamepadButton{
	ebiten.StandardGamepadButtonCenterLeft,
	ebiten.StandardGamepadButtonLeftLeft,
	ebiten.StandardGamepadButtonLeftTop,
	ebiten.StandardGamepadButtonLeftRight,
	ebiten.StandardGamepadButtonLeftBottom,
}

// Source polls the keyboard and the first standard gamepad.
//
//	move   A/D, arrows, left stick      crouch  S, down, stick down
//	jump   Space, south button          attack  J, west button
//	special K, north button             defend  L, left shoulder
//	roll   Shift, east button           forms   1-5, d-pad and select
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

// Poll reads the current input snapshot. Call once per game update.
func (s *Source) Poll() component.Input {
	var in component.Input

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	if left {
		in.MoveX -= 1
	}
	if right {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY = -1
		in.Crouch = true
	}

	in.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.AttackHeld = ebiten.IsKeyPressed(ebiten.KeyJ)
	in.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	in.AttackReleased = inpututil.IsKeyJustReleased(ebiten.KeyJ)
	in.SpecialPressed = inpututil.IsKeyJustPressed(ebiten.KeyK)
	in.DefendHeld = ebiten.IsKeyPressed(ebiten.KeyL)
	in.RollPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight)

	for i, k := range formKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.FormSelect = i + 1
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		pollGamepad(gamepads[0], &in)
	}
	return in
}

func pollGamepad(id ebiten.GamepadID, in *component.Input) {
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}
	leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	if math.Abs(leftX) > stickDeadzone {
		in.MoveX = leftX
	}
	// stick Y is screen-down
	leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if leftY > 0.5 {
		in.MoveY = -leftY
		in.Crouch = true
	}

	held := func(b ebiten.StandardGamepadButton) bool { return ebiten.IsStandardGamepadButtonPressed(id, b) }
	pressed := func(b ebiten.StandardGamepadButton) bool { return inpututil.IsStandardGamepadButtonJustPressed(id, b) }
	released := func(b ebiten.StandardGamepadButton) bool { return inpututil.IsStandardGamepadButtonJustReleased(id, b) }

	in.JumpHeld = in.JumpHeld || held(ebiten.StandardGamepadButtonRightBottom)
	in.JumpPressed = in.JumpPressed || pressed(ebiten.StandardGamepadButtonRightBottom)
	in.AttackHeld = in.AttackHeld || held(ebiten.StandardGamepadButtonRightLeft)
	in.AttackPressed = in.AttackPressed || pressed(ebiten.StandardGamepadButtonRightLeft)
	in.AttackReleased = in.AttackReleased || released(ebiten.StandardGamepadButtonRightLeft)
	in.SpecialPressed = in.SpecialPressed || pressed(ebiten.StandardGamepadButtonRightTop)
	in.DefendHeld = in.DefendHeld || held(ebiten.StandardGamepadButtonFrontTopLeft)
	in.RollPressed = in.RollPressed || pressed(ebiten.StandardGamepadButtonRightRight)

	for i, b := range formButtons {
		if pressed(b) {
			in.FormSelect = i + 1
		}
	}
}
