package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"tota/internal/config"
	"tota/internal/grid"
)

// Fixed outcomes of the shared validators.
const (
	EventNotAPosition = "tried to perform an action into a target that isn't a position"
	EventTooFar       = "too far away"
	EventOffTheMap    = "tried to move out of the world"
)

// attempt carries one action invocation through its checks and effect.
type attempt struct {
	actor  Thing
	world  *World
	target any
	pos    grid.Position
}

// check returns the failure event and false to stop the chain.
type check func(a *attempt) (string, bool)

type effect func(a *attempt) string

// Action is an ordered list of checks guarding an effect. The first failing
// check decides the event and the effect never runs.
type Action struct {
	name   string
	checks []check
	effect effect
}

func (ac Action) Name() string { return ac.name }

func (ac Action) Run(actor Thing, w *World, target any) string {
	a := &attempt{actor: actor, world: w, target: target}
	for _, c := range ac.checks {
		if event, ok := c(a); !ok {
			return event
		}
	}
	return ac.effect(a)
}

func targetPosition(a *attempt) (string, bool) {
	switch p := a.target.(type) {
	case grid.Position:
		a.pos = p
		return "", true
	case *grid.Position:
		if p != nil {
			a.pos = *p
			return "", true
		}
	}
	return EventNotAPosition, false
}

func withinDistance(max float64) check {
	return func(a *attempt) (string, bool) {
		if grid.Distance(a.actor.Base().Pos, a.pos) > max {
			return EventTooFar, false
		}
		return "", true
	}
}

// offCooldown blocks while t - last use <= cooldown.
func offCooldown(name, key string, cooldown int) check {
	return func(a *attempt) (string, bool) {
		last, used := a.actor.Base().LastUses[key]
		if used && a.world.T-last <= cooldown {
			return fmt.Sprintf("tried to %s but it's on cooldown", name), false
		}
		return "", true
	}
}

func markUsed(a *attempt, key string) {
	a.actor.Base().LastUses[key] = a.world.T
}

// rollDamage draws from [min, max] and scales by level when the action has a
// level multiplier and the actor has a level.
func rollDamage(rng *rand.Rand, actor Thing, s config.ActionSettings) float64 {
	lo, hi := s.MinDamage(), s.MaxDamage()
	roll := lo + rng.Intn(hi-lo+1)
	mult := 1.0
	if s.LevelMultiplier != 0 {
		if l, ok := actor.(leveled); ok {
			mult = 1 + float64(l.Level())*s.LevelMultiplier
		}
	}
	return float64(roll) * mult
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
