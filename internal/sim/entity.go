package sim

import (
	"errors"
	"fmt"

	"tota/internal/config"
	"tota/internal/grid"
)

var ErrInvalidTeam = errors.New("invalid team name")

type Kind string

const (
	KindTree    Kind = "Tree"
	KindAncient Kind = "Ancient"
	KindTower   Kind = "Tower"
	KindCreep   Kind = "Creep"
	KindHero    Kind = "Hero"
)

// Decoration kinds carry no state worth observing.
func (k Kind) Decoration() bool { return k == KindTree }

// Intent is what an entity wants to do this tick. Target comes from
// untrusted decision code, so it is only checked when the action runs.
type Intent struct {
	Action string
	Target any
}

// View is the read side of the world handed to entities when they decide.
type View interface {
	grid.Board
	Get(p grid.Position) (Thing, bool)
	All() []Thing
}

type Thing interface {
	Kind() Kind
	Base() *Entity
	MaxLife() float64
	Act(things View, t int) (Intent, bool)
}

// Entity is the state shared by every kind of thing. Pos mirrors the
// registry key and is only written by the world.
type Entity struct {
	ID            string
	Name          string
	Life          float64
	Team          string
	Pos           grid.Position
	Acts          bool
	DisabledUntil int
	LastUses      map[string]int

	LastAction string
	LastTarget any

	maxLife float64
}

func newEntity(cfg *config.Settings, name string, life float64, team string, acts bool) (Entity, error) {
	if !cfg.Teams.Valid(team) {
		return Entity{}, fmt.Errorf("%w: %q", ErrInvalidTeam, team)
	}
	return Entity{
		Name:     name,
		Life:     life,
		Team:     team,
		Acts:     acts,
		LastUses: map[string]int{},
		maxLife:  life,
	}, nil
}

func (e *Entity) Base() *Entity    { return e }
func (e *Entity) Alive() bool      { return e.Life > 0 }
func (e *Entity) MaxLife() float64 { return e.maxLife }

// Disabled reports whether the entity is stunned at tick t.
func (e *Entity) Disabled(t int) bool { return t < e.DisabledUntil }

// Act is the default behaviour: do nothing.
func (e *Entity) Act(View, int) (Intent, bool) { return Intent{}, false }

func (e *Entity) String() string { return e.Name }

// leveled is implemented by things whose damage scales with level.
type leveled interface {
	Level() int
}

func enemiesOf(cfg *config.Settings, team string, things View) []Thing {
	enemy, ok := cfg.Teams.Enemy(team)
	if !ok {
		return nil
	}
	var out []Thing
	for _, th := range things.All() {
		if th.Base().Team == enemy {
			out = append(out, th)
		}
	}
	return out
}

func closestThing(from grid.Position, things []Thing) (Thing, bool) {
	return grid.Closest(from, things, func(th Thing) grid.Position { return th.Base().Pos })
}
