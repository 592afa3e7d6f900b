package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/echoform/anim"
	"github.com/milk9111/echoform/component"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrUnknownMode = errors.New("prefabs: unknown mode")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CharacterSpec struct {
	Name      string        `yaml:"name"`
	Combat    string        `yaml:"combat"`
	Movement  string        `yaml:"movement"`
	Collider  ColliderSpec  `yaml:"collider"`
	Tuning    TuningSpec    `yaml:"tuning"`
	Forms     []FormSpec    `yaml:"forms"`
	Animation AnimationSpec `yaml:"animation"`
}

// LoadCharacterSpec loads and validates a character spec.
func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &spec, nil
}

type TuningSpec struct {
	MoveSpeed             float64         `yaml:"move_speed"`
	CrouchSpeedModifier   float64         `yaml:"crouch_speed_modifier"`
	JumpHeight            float64         `yaml:"jump_height"`
	Gravity               float64         `yaml:"gravity"`
	RollSpeed             float64         `yaml:"roll_speed"`
	RollDuration          time.Duration   `yaml:"roll_duration"`
	BufferWindow          time.Duration   `yaml:"buffer_window"`
	AttackCooldown        time.Duration   `yaml:"attack_cooldown"`
	ComboCooldown         time.Duration   `yaml:"combo_cooldown"`
	MaxChargeTime         time.Duration   `yaml:"max_charge_time"`
	TierDurations         []time.Duration `yaml:"tier_durations"`
	SpecialAttackCooldown time.Duration   `yaml:"special_attack_cooldown"`
	SpecialAttackDuration time.Duration   `yaml:"special_attack_duration"`
	HurtDuration          time.Duration   `yaml:"hurt_duration"`
	TransformLock         time.Duration   `yaml:"transform_lock"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type FormSpec struct {
	Name  string     `yaml:"name"`
	Color *YAMLColor `yaml:"color"`
}

type AnimationSpec struct {
	FrameW int                 `yaml:"frame_w"`
	FrameH int                 `yaml:"frame_h"`
	Clips  map[string]ClipSpec `yaml:"clips"`
}

type ClipSpec struct {
	Row        int              `yaml:"row"`
	FrameCount int              `yaml:"frame_count"`
	FPS        int              `yaml:"fps"`
	Loop       bool             `yaml:"loop"`
	OnEnd      string           `yaml:"on_end"`
	Events     map[int][]string `yaml:"events"`
}

// Validate reports every problem in the spec at once.
func (s *CharacterSpec) Validate() error {
	var errs []error
	switch component.CombatMode(s.Combat) {
	case component.CombatCombo, component.CombatCharge:
	default:
		errs = append(errs, fmt.Errorf("%w: combat %q", ErrUnknownMode, s.Combat))
	}
	switch component.MovementMode(s.Movement) {
	case component.MovementKinematic, component.MovementBody:
	default:
		errs = append(errs, fmt.Errorf("%w: movement %q", ErrUnknownMode, s.Movement))
	}

	t := s.Tuning
	positive := []struct {
		name string
		v    float64
	}{
		{"move_speed", t.MoveSpeed},
		{"crouch_speed_modifier", t.CrouchSpeedModifier},
		{"jump_height", t.JumpHeight},
		{"roll_speed", t.RollSpeed},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("tuning.%s must be positive, got %v", p.name, p.v))
		}
	}
	if t.Gravity >= 0 {
		errs = append(errs, fmt.Errorf("tuning.gravity must be negative, got %v", t.Gravity))
	}

	durations := []struct {
		name string
		v    time.Duration
	}{
		{"roll_duration", t.RollDuration},
		{"buffer_window", t.BufferWindow},
		{"attack_cooldown", t.AttackCooldown},
		{"combo_cooldown", t.ComboCooldown},
		{"max_charge_time", t.MaxChargeTime},
		{"special_attack_duration", t.SpecialAttackDuration},
		{"hurt_duration", t.HurtDuration},
		{"transform_lock", t.TransformLock},
	}
	for _, d := range durations {
		if d.v <= 0 {
			errs = append(errs, fmt.Errorf("tuning.%s must be positive, got %v", d.name, d.v))
		}
	}
	if t.SpecialAttackCooldown < 0 {
		errs = append(errs, fmt.Errorf("tuning.special_attack_cooldown must not be negative"))
	}
	if len(t.TierDurations) != 3 {
		errs = append(errs, fmt.Errorf("tuning.tier_durations needs 3 entries, got %d", len(t.TierDurations)))
	}
	for i, d := range t.TierDurations {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("tuning.tier_durations[%d] must be positive", i))
		}
	}

	if len(s.Forms) > component.FormCount {
		errs = append(errs, fmt.Errorf("forms: at most %d, got %d", component.FormCount, len(s.Forms)))
	}
	for i, f := range s.Forms {
		if want := component.Form(i).String(); f.Name != want {
			errs = append(errs, fmt.Errorf("forms[%d]: name %q, want %q", i, f.Name, want))
		}
	}
	for name, c := range s.Animation.Clips {
		if c.FrameCount <= 0 {
			errs = append(errs, fmt.Errorf("animation.clips.%s: frame_count must be positive", name))
		}
	}
	return errors.Join(errs...)
}

// ToTuning converts the spec into controller tuning.
func (s *CharacterSpec) ToTuning() component.Tuning {
	t := s.Tuning
	out := component.Tuning{
		Combat:                component.CombatMode(s.Combat),
		Movement:              component.MovementMode(s.Movement),
		MoveSpeed:             t.MoveSpeed,
		CrouchSpeedModifier:   t.CrouchSpeedModifier,
		JumpHeight:            t.JumpHeight,
		Gravity:               t.Gravity,
		RollSpeed:             t.RollSpeed,
		RollDuration:          t.RollDuration,
		BufferWindow:          t.BufferWindow,
		AttackCooldown:        t.AttackCooldown,
		ComboCooldown:         t.ComboCooldown,
		MaxChargeTime:         t.MaxChargeTime,
		SpecialAttackCooldown: t.SpecialAttackCooldown,
		SpecialAttackDuration: t.SpecialAttackDuration,
		HurtDuration:          t.HurtDuration,
		TransformLock:         t.TransformLock,
	}
	copy(out.TierDurations[:], t.TierDurations)
	return out
}

// Surfaces builds one animation surface per configured form. Every form
// shares the clip layout; forms past the list get no surface.
func (s *CharacterSpec) Surfaces() []*anim.Surface {
	out := make([]*anim.Surface, 0, len(s.Forms))
	for _, f := range s.Forms {
		surface := &anim.Surface{Name: f.Name, Clips: make(map[string]*anim.Clip, len(s.Animation.Clips))}
		for name, c := range s.Animation.Clips {
			clip := &anim.Clip{
				Name:   name,
				Row:    c.Row,
				Frames: c.FrameCount,
				FPS:    c.FPS,
				Loop:   c.Loop,
				OnEnd:  c.OnEnd,
			}
			if len(c.Events) > 0 {
				clip.Events = anim.NewEventMap()
				for frame, names := range c.Events {
					for _, n := range names {
						clip.Events.Add(frame, n)
					}
				}
			}
			surface.Clips[name] = clip
		}
		out = append(out, surface)
	}
	return out
}

// FormColor returns the placeholder tint for form i.
func (s *CharacterSpec) FormColor(i int) color.Color {
	if i < 0 || i >= len(s.Forms) || s.Forms[i].Color == nil {
		return colornames.White
	}
	return s.Forms[i].Color.Color
}

type ArenaSpec struct {
	Name       string         `yaml:"name"`
	Width      float64        `yaml:"width"`
	Height     float64        `yaml:"height"`
	Background *YAMLColor     `yaml:"background"`
	Spawn      PointSpec      `yaml:"spawn"`
	Platforms  []PlatformSpec `yaml:"platforms"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlatformSpec struct {
	MinX  float64    `yaml:"min_x"`
	MinY  float64    `yaml:"min_y"`
	MaxX  float64    `yaml:"max_x"`
	MaxY  float64    `yaml:"max_y"`
	Color *YAMLColor `yaml:"color"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
