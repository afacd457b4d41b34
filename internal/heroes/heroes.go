// Package heroes holds the built-in hero scripts selectable from the lineup.
package heroes

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"tota/internal/config"
	"tota/internal/grid"
	"tota/internal/sim"
)

var ErrUnknownHero = errors.New("unknown hero")

type factory func(rng *rand.Rand) sim.DecisionFunc

var scripts = map[string]factory{
	"noob":   Noob,
	"hunter": func(*rand.Rand) sim.DecisionFunc { return Hunter },
}

// Names lists the available scripts.
func Names() []string {
	out := make([]string, 0, len(scripts))
	for name := range scripts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup builds the script called name. Random scripts draw from rng, which
// should be the game's own source so a seed replays the whole match.
func Lookup(name string, rng *rand.Rand) (sim.DecisionFunc, error) {
	f, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownHero, name, Names())
	}
	return f(rng), nil
}

// Resolver binds rng for game.SpecsFromLineup.
func Resolver(rng *rand.Rand) func(string) (sim.DecisionFunc, error) {
	return func(name string) (sim.DecisionFunc, error) { return Lookup(name, rng) }
}

var noobActions = []string{sim.ActMove, sim.ActAttack, sim.ActFireball, sim.ActHeal, sim.ActStun}

// Noob picks any action at any adjacent cell.
func Noob(rng *rand.Rand) sim.DecisionFunc {
	return func(self *sim.Hero, _ sim.View, _ int) (sim.Intent, bool) {
		adj := grid.AdjacentPositions(self.Pos)
		return sim.Intent{
			Action: noobActions[rng.Intn(len(noobActions))],
			Target: adj[rng.Intn(len(adj))],
		}, true
	}
}

// Hunter heals when hurt, stuns or burns what it can reach, hits what is next
// to it and otherwise walks at the closest enemy.
var Hunter = FromTree(&Selector{Children: []BTNode{
	seq(
		when(func(bb *Blackboard) bool { return bb.Self.Life < bb.Self.MaxLife()/2 }),
		when(func(bb *Blackboard) bool { return bb.Self.Ready(bb.Self.Settings().Actions.Heal, bb.T) }),
		do(func(bb *Blackboard) bool { return bb.Decide(sim.ActHeal, bb.Self.Pos) }),
	),
	seq(
		when(findEnemy),
		&Selector{Children: []BTNode{
			seq(
				when(targetIsHero),
				when(func(bb *Blackboard) bool { return inReach(bb, bb.Self.Settings().Actions.Stun) }),
				do(func(bb *Blackboard) bool { return bb.Decide(sim.ActStun, bb.Target.Base().Pos) }),
			),
			seq(
				when(func(bb *Blackboard) bool { return inReach(bb, bb.Self.Settings().Actions.Fireball) }),
				when(func(bb *Blackboard) bool { return targetDistance(bb) > bb.Self.Settings().Actions.Fireball.Radius }),
				do(func(bb *Blackboard) bool { return bb.Decide(sim.ActFireball, bb.Target.Base().Pos) }),
			),
			seq(
				when(func(bb *Blackboard) bool { return inReach(bb, bb.Self.Settings().Actions.HeroAttack) }),
				do(func(bb *Blackboard) bool { return bb.Decide(sim.ActAttack, bb.Target.Base().Pos) }),
			),
			do(stepTowardsTarget),
		}},
	),
}})

// inReach is true when the target is within the action's distance and its
// cooldown, if any, has run out.
func inReach(bb *Blackboard, s config.ActionSettings) bool {
	return targetDistance(bb) <= s.Distance && bb.Self.Ready(s, bb.T)
}

func closestEnemy(self *sim.Hero, things sim.View) (sim.Thing, bool) {
	enemy, ok := self.Settings().Teams.Enemy(self.Team)
	if !ok {
		return nil, false
	}
	var enemies []sim.Thing
	for _, th := range things.All() {
		if b := th.Base(); b.Team == enemy && b.Alive() {
			enemies = append(enemies, th)
		}
	}
	return grid.Closest(self.Pos, enemies, func(th sim.Thing) grid.Position { return th.Base().Pos })
}
