package sim

import (
	"fmt"

	"tota/internal/grid"
)

// Snapshot is a read-only copy of the world at one tick, for drawers.
type Snapshot struct {
	T      int          `json:"t"`
	Things []ThingState `json:"things"`
}

type ThingState struct {
	ID       string        `json:"id"`
	Type     Kind          `json:"type"`
	Position grid.Position `json:"position"`
	*Details
}

// Details is left out for decoration kinds.
type Details struct {
	Life   float64 `json:"life"`
	Name   string  `json:"name"`
	Team   string  `json:"team"`
	Level  *int    `json:"level"`
	XP     *int    `json:"xp"`
	Action *string `json:"action"`
	Target any     `json:"target"`
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{T: w.T, Things: make([]ThingState, 0, w.things.Len())}
	for _, th := range w.things.All() {
		b := th.Base()
		st := ThingState{ID: b.ID, Type: th.Kind(), Position: b.Pos}
		if !th.Kind().Decoration() {
			d := &Details{Life: b.Life, Name: b.Name, Team: b.Team, Target: observedTarget(b.LastTarget)}
			if b.LastAction != "" {
				action := b.LastAction
				d.Action = &action
			}
			if h, ok := th.(*Hero); ok {
				level, xp := h.Level(), h.XP
				d.Level, d.XP = &level, &xp
			}
			st.Details = d
		}
		s.Things = append(s.Things, st)
	}
	return s
}

// observedTarget keeps positions as they are and flattens anything else a
// script returned into text.
func observedTarget(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case grid.Position:
		return t
	case *grid.Position:
		if t == nil {
			return nil
		}
		return *t
	}
	return fmt.Sprint(v)
}
