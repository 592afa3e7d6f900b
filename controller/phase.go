package controller

import "time"

// Phase is one ordered step of a controller tick.
type Phase interface {
	Name() string
	Run(c *Controller, dt time.Duration)
}

type phaseFunc struct {
	name string
	fn   func(c *Controller, dt time.Duration)
}

func (p phaseFunc) Name() string { return p.name }

func (p phaseFunc) Run(c *Controller, dt time.Duration) { p.fn(c, dt) }

// Pipeline runs phases in the order they were added. Each tick runs to
// completion before the next one starts.
type Pipeline struct {
	phases []Phase
}

func NewPipeline(phases ...Phase) *Pipeline {
	copied := append([]Phase(nil), phases...)
	return &Pipeline{phases: copied}
}

func (p *Pipeline) Run(c *Controller, dt time.Duration) {
	for _, phase := range p.phases {
		phase.Run(c, dt)
	}
}

func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.phases))
	for _, phase := range p.phases {
		names = append(names, phase.Name())
	}
	return names
}
