package anim

import "math"

// Clip is one row of a sprite sheet. Frames are read left to right.
type Clip struct {
	Name   string
	Row    int
	Frames int
	FPS    int
	Loop   bool
	// Events fire when playback enters the given frame.
	Events *EventMap
	// OnEnd fires once when a non-looping clip reaches its last frame.
	OnEnd string
}

// Player steps a clip at a fixed update rate (60 per second).
type Player struct {
	clip          *Clip
	current       int
	tick          int
	ticksPerFrame int
	done          bool
	emit          EventHandler
}

// NewPlayer creates a player that reports frame events to h.
func NewPlayer(h EventHandler) *Player {
	return &Player{emit: h}
}

// Play starts c from its first frame. Playing the clip that is already
// running restarts it only when restart is true.
func (p *Player) Play(c *Clip, restart bool) {
	if p == nil || c == nil {
		return
	}
	if p.clip == c && !restart {
		return
	}
	fps := c.FPS
	if fps <= 0 {
		fps = 12
	}
	p.clip = c
	p.current = 0
	p.tick = 0
	p.done = false
	p.ticksPerFrame = int(math.Max(1, math.Round(60.0/float64(fps))))
	p.fire(0)
}

// Update advances playback by one game update.
func (p *Player) Update() {
	if p == nil || p.clip == nil || p.done {
		return
	}
	c := p.clip
	if c.Frames <= 1 {
		p.finish()
		return
	}
	p.tick++
	if p.tick < p.ticksPerFrame {
		return
	}
	p.tick = 0
	p.current++
	if p.current >= c.Frames {
		if c.Loop {
			p.current = 0
		} else {
			p.current = c.Frames - 1
			p.finish()
			return
		}
	}
	p.fire(p.current)
	if !c.Loop && p.current == c.Frames-1 {
		p.finish()
	}
}

func (p *Player) finish() {
	if p.done || p.clip.Loop {
		return
	}
	p.done = true
	if p.clip.OnEnd != "" && p.emit != nil {
		p.emit(p.clip.Name, p.current, p.clip.OnEnd)
	}
}

func (p *Player) fire(frame int) {
	if p.emit == nil || p.clip.Events == nil {
		return
	}
	for _, name := range p.clip.Events.Frames[frame] {
		p.emit(p.clip.Name, frame, name)
	}
}

// Clip returns the clip being played.
func (p *Player) Clip() *Clip {
	if p == nil {
		return nil
	}
	return p.clip
}

// Frame returns the current frame index within the clip.
func (p *Player) Frame() int {
	if p == nil {
		return 0
	}
	return p.current
}

// Done reports whether a non-looping clip has finished.
func (p *Player) Done() bool {
	return p != nil && p.done
}
