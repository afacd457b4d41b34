package sim

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"tota/internal/config"
	"tota/internal/grid"
)

// World owns the tick clock, the position registry and the event log. It is
// not safe for concurrent use: every action resolves completely before the
// next one starts.
type World struct {
	T int

	size    grid.Size
	cfg     *config.Settings
	actions *Actions
	rng     *rand.Rand
	things  *Registry
	events  []Event
	logger  *log.Logger
}

type Option func(*World)

// WithLogger logs every event as it is recorded.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld builds an empty world. A zero size is taken from the first
// imported map. All rolls draw from rng.
func NewWorld(cfg *config.Settings, size grid.Size, rng *rand.Rand, opts ...Option) *World {
	w := &World{
		size:    size,
		cfg:     cfg,
		actions: NewActions(cfg),
		rng:     rng,
		things:  NewRegistry(),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Size() grid.Size            { return w.size }
func (w *World) Settings() *config.Settings { return w.cfg }

func (w *World) Get(p grid.Position) (Thing, bool) { return w.things.Get(p) }
func (w *World) All() []Thing                      { return w.things.All() }
func (w *World) Len() int                          { return w.things.Len() }
func (w *World) InBounds(p grid.Position) bool     { return w.size.Contains(p) }

func (w *World) Occupied(p grid.Position) bool {
	_, ok := w.things.Get(p)
	return ok
}

// Spawn registers th at p. Callers pick a free position first; a taken or
// out-of-bounds position is an error.
func (w *World) Spawn(th Thing, p grid.Position) error {
	if !w.InBounds(p) {
		return fmt.Errorf("spawn %s: %w: %s", th.Base().Name, ErrOutOfBounds, p)
	}
	if err := w.things.add(th, p); err != nil {
		return fmt.Errorf("spawn %s: %w", th.Base().Name, err)
	}
	return nil
}

// Destroy removes th from the registry and nothing else.
func (w *World) Destroy(th Thing) bool { return w.things.remove(th) }

func (w *World) relocate(th Thing, to grid.Position) { w.things.move(th, to) }

func (w *World) Events() []Event { return w.events }

// EventsAt returns the events recorded during tick t.
func (w *World) EventsAt(t int) []Event {
	var out []Event
	for _, ev := range w.events {
		if ev.T == t {
			out = append(out, ev)
		}
	}
	return out
}

func (w *World) record(th Thing, text string) {
	ev := newEvent(w.T, th, text)
	w.events = append(w.events, ev)
	w.logger.Printf("t=%d %s(%s): %s", ev.T, ev.Name, ev.Team, ev.Text)
}

func (w *World) canAct(th Thing) bool {
	b := th.Base()
	return b.Acts && b.Alive() && !b.Disabled(w.T)
}

// Step runs one tick. Actors are taken in registry order; each one is
// checked again right before it acts, so a thing killed or stunned earlier
// in the tick stays still.
func (w *World) Step() {
	var actors []Thing
	for _, th := range w.things.All() {
		if w.canAct(th) {
			actors = append(actors, th)
		}
	}
	for _, th := range actors {
		if !w.canAct(th) {
			continue
		}
		b := th.Base()
		intent, ok := th.Act(w, w.T)
		if !ok {
			b.LastAction, b.LastTarget = "", nil
			continue
		}
		event := w.Perform(th, intent)
		b.LastAction, b.LastTarget = intent.Action, intent.Target
		w.record(th, event)
	}
	w.T++
}

// Perform resolves one intent through the actor's action table and returns
// the event text. It never fails: bad intents only produce event text.
func (w *World) Perform(th Thing, intent Intent) string {
	ac, ok := w.actions.For(th.Kind(), intent.Action)
	if !ok {
		return fmt.Sprintf("tried to perform an unknown action %q", intent.Action)
	}
	return ac.Run(th, w, intent.Target)
}
