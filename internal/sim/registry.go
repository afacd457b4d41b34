package sim

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tota/internal/grid"
)

var (
	ErrOccupied    = errors.New("position occupied")
	ErrOutOfBounds = errors.New("position out of bounds")
)

// Registry maps positions to things, at most one per position. Iteration
// follows spawn order; moving does not change a thing's place in it.
type Registry struct {
	byPos map[grid.Position]Thing
	order []Thing
	seq   int
}

func NewRegistry() *Registry {
	return &Registry{byPos: map[grid.Position]Thing{}}
}

func (r *Registry) Get(p grid.Position) (Thing, bool) {
	th, ok := r.byPos[p]
	return th, ok
}

func (r *Registry) Len() int { return len(r.order) }

// All returns the registered things in spawn order.
func (r *Registry) All() []Thing { return append([]Thing(nil), r.order...) }

func (r *Registry) add(th Thing, p grid.Position) error {
	if other, ok := r.byPos[p]; ok {
		return fmt.Errorf("%w: %s by %s", ErrOccupied, p, other.Base().Name)
	}
	b := th.Base()
	r.seq++
	if b.ID == "" {
		b.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("tota/%d/%s", r.seq, b.Name))).String()
	}
	b.Pos = p
	r.byPos[p] = th
	r.order = append(r.order, th)
	return nil
}

// move assumes the destination was checked free.
func (r *Registry) move(th Thing, to grid.Position) {
	b := th.Base()
	delete(r.byPos, b.Pos)
	r.byPos[to] = th
	b.Pos = to
}

func (r *Registry) remove(th Thing) bool {
	b := th.Base()
	if cur, ok := r.byPos[b.Pos]; !ok || cur != th {
		return false
	}
	delete(r.byPos, b.Pos)
	for i, o := range r.order {
		if o == th {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}
