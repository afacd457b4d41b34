package heroes

import (
	"tota/internal/grid"
	"tota/internal/sim"
)

type BTStatus int

const (
	BTSuccess BTStatus = iota
	BTFailure
)

type BTNode interface{ Tick(*Blackboard) BTStatus }

// Blackboard is what one decision sees and writes. Conditions may fill
// Target for later nodes; actions set Intent.
type Blackboard struct {
	Self   *sim.Hero
	Things sim.View
	T      int
	Target sim.Thing

	intent  sim.Intent
	decided bool
}

func (bb *Blackboard) Decide(action string, target any) bool {
	bb.intent = sim.Intent{Action: action, Target: target}
	bb.decided = true
	return true
}

type Selector struct{ Children []BTNode }

func (s *Selector) Tick(bb *Blackboard) BTStatus {
	for _, ch := range s.Children {
		if ch.Tick(bb) == BTSuccess {
			return BTSuccess
		}
	}
	return BTFailure
}

type Sequence struct{ Children []BTNode }

func (s *Sequence) Tick(bb *Blackboard) BTStatus {
	for _, ch := range s.Children {
		if ch.Tick(bb) != BTSuccess {
			return BTFailure
		}
	}
	return BTSuccess
}

type Condition func(*Blackboard) bool
type CondNode struct{ Fn Condition }

func (c *CondNode) Tick(bb *Blackboard) BTStatus {
	if c.Fn(bb) {
		return BTSuccess
	}
	return BTFailure
}

type Action func(*Blackboard) bool
type ActionNode struct{ Fn Action }

func (a *ActionNode) Tick(bb *Blackboard) BTStatus {
	if a.Fn(bb) {
		return BTSuccess
	}
	return BTFailure
}

func seq(children ...BTNode) *Sequence { return &Sequence{Children: children} }
func when(fn Condition) *CondNode     { return &CondNode{Fn: fn} }
func do(fn Action) *ActionNode        { return &ActionNode{Fn: fn} }

// FromTree turns a behaviour tree into a hero script. A tree that ends
// without an action leaves the hero idle.
func FromTree(root BTNode) sim.DecisionFunc {
	return func(self *sim.Hero, things sim.View, t int) (sim.Intent, bool) {
		bb := &Blackboard{Self: self, Things: things, T: t}
		root.Tick(bb)
		return bb.intent, bb.decided
	}
}

func targetDistance(bb *Blackboard) float64 {
	return grid.Distance(bb.Self.Pos, bb.Target.Base().Pos)
}

func targetIsHero(bb *Blackboard) bool { return bb.Target.Kind() == sim.KindHero }

func findEnemy(bb *Blackboard) bool {
	enemy, ok := closestEnemy(bb.Self, bb.Things)
	bb.Target = enemy
	return ok
}

func stepTowardsTarget(bb *Blackboard) bool {
	moves := grid.SortByDistance(bb.Target.Base().Pos, grid.PossibleMoves(bb.Self.Pos, bb.Things))
	if len(moves) == 0 {
		return false
	}
	return bb.Decide(sim.ActMove, moves[0])
}
