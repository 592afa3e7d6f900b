package anim

// EventHandler receives named frame events.
type EventHandler func(clip string, frame int, name string)

// EventMap stores per-frame event names for a clip.
type EventMap struct {
	Frames map[int][]string
}

// NewEventMap creates an empty event map.
func NewEventMap() *EventMap {
	return &EventMap{Frames: make(map[int][]string)}
}

// Add adds an event for a frame.
func (m *EventMap) Add(frame int, name string) {
	if m == nil || frame < 0 || name == "" {
		return
	}
	if m.Frames == nil {
		m.Frames = make(map[int][]string)
	}
	m.Frames[frame] = append(m.Frames[frame], name)
}

// Emitter fans events out to several handlers.
type Emitter struct {
	Handlers []EventHandler
}

// Emit sends an event to all handlers.
func (e *Emitter) Emit(clip string, frame int, name string) {
	if e == nil {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(clip, frame, name)
		}
	}
}
