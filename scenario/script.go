package scenario

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/echoform/component"
	"github.com/milk9111/echoform/prefabs"
)

const dispatchScript = `
step(__engine, __tick, __state)
`

// Frame is what a script asked for on one tick.
type Frame struct {
	Input  component.Input
	Damage bool
	Done   bool
	Notes  []string
}

// Script is a compiled scenario. The source must define
// `step := func(engine, tick, state) { ... }`; engine exposes press, hold,
// release, move, crouch, form, damage, note and done.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

// Load compiles a scenario script from the prefab scripts directory.
func Load(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile compiles scenario source.
func Compile(name string, src []byte) (*Script, error) {
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__tick", 0)
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string { return s.name }

// Step runs the script for one tick against a snapshot of the state.
func (s *Script) Step(tick int, st component.ActionState) (Frame, error) {
	var f Frame
	if s == nil || s.compiled == nil {
		return f, fmt.Errorf("scenario: nil script")
	}
	if err := s.compiled.Set("__engine", buildEngine(&f)); err != nil {
		return f, fmt.Errorf("scenario: %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__tick", tick); err != nil {
		return f, fmt.Errorf("scenario: %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__state", stateMap(st)); err != nil {
		return f, fmt.Errorf("scenario: %s: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return f, fmt.Errorf("scenario: %s tick %d: %w", s.name, tick, err)
	}
	return f, nil
}

func stateMap(st component.ActionState) map[string]any {
	return map[string]any{
		"form":          st.Form.String(),
		"x":             st.Position.X,
		"y":             st.Position.Y,
		"grounded":      st.IsGrounded,
		"jumping":       st.IsJumping,
		"attacking":     st.IsAttacking,
		"attack_phase":  st.AttackPhase,
		"attack_tier":   st.AttackTier,
		"charging":      st.IsCharging,
		"rolling":       st.IsRolling,
		"defending":     st.IsDefending,
		"hurt":          st.IsHurt,
		"can_transform": st.CanTransform,
		"buffered":      st.AnyBuffered(),
	}
}

func buildEngine(f *Frame) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(press(&f.Input, objectAsString(args[0]))), nil
	}}

	values["hold"] = &tengo.UserFunction{Name: "hold", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(hold(&f.Input, objectAsString(args[0]))), nil
	}}

	values["release"] = &tengo.UserFunction{Name: "release", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || objectAsString(args[0]) != "attack" {
			return tengo.FalseValue, nil
		}
		f.Input.AttackReleased = true
		return tengo.TrueValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		f.Input.MoveX = x
		return tengo.TrueValue, nil
	}}

	values["crouch"] = &tengo.UserFunction{Name: "crouch", Value: func(args ...tengo.Object) (tengo.Object, error) {
		f.Input.Crouch = true
		f.Input.MoveY = -1
		return tengo.TrueValue, nil
	}}

	values["form"] = &tengo.UserFunction{Name: "form", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		if n, ok := tengo.ToInt(args[0]); ok {
			f.Input.FormSelect = n
			return tengo.TrueValue, nil
		}
		form, ok := component.ParseForm(objectAsString(args[0]))
		if !ok {
			return tengo.FalseValue, nil
		}
		f.Input.FormSelect = int(form) + 1
		return tengo.TrueValue, nil
	}}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		f.Damage = true
		return tengo.TrueValue, nil
	}}

	values["note"] = &tengo.UserFunction{Name: "note", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		f.Notes = append(f.Notes, strings.Join(parts, " "))
		return tengo.TrueValue, nil
	}}

	values["done"] = &tengo.UserFunction{Name: "done", Value: func(args ...tengo.Object) (tengo.Object, error) {
		f.Done = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func press(in *component.Input, action string) bool {
	switch action {
	case "jump":
		in.JumpPressed, in.JumpHeld = true, true
	case "attack":
		in.AttackPressed, in.AttackHeld = true, true
	case "special":
		in.SpecialPressed = true
	case "roll":
		in.RollPressed = true
	default:
		return false
	}
	return true
}

func hold(in *component.Input, action string) bool {
	switch action {
	case "jump":
		in.JumpHeld = true
	case "attack":
		in.AttackHeld = true
	case "defend":
		in.DefendHeld = true
	default:
		return false
	}
	return true
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
