package sim

import (
	"fmt"
	"math"
	"strings"

	"tota/internal/config"
	"tota/internal/grid"
)

// Actions is the per-kind action table built from one Settings value.
type Actions struct {
	byKind map[Kind]map[string]Action
}

func NewActions(cfg *config.Settings) *Actions {
	ac := cfg.Actions
	move := newAction(ActMove, ac.Move, moveEffect)
	return &Actions{byKind: map[Kind]map[string]Action{
		KindHero: {
			ActMove:     move,
			ActAttack:   newAction(ActAttack, ac.HeroAttack, attackEffect(ac.HeroAttack)),
			ActHeal:     newSpell(ActHeal, ac.Heal, healEffect(ac.Heal)),
			ActFireball: newSpell(ActFireball, ac.Fireball, fireballEffect(ac.Fireball)),
			ActStun:     newSpell(ActStun, ac.Stun, stunEffect(ac.Stun)),
		},
		KindTower: {
			ActAttack: newAction(ActAttack, ac.TowerAttack, attackEffect(ac.TowerAttack)),
		},
		KindCreep: {
			ActMove:   move,
			ActAttack: newAction(ActAttack, ac.CreepAttack, attackEffect(ac.CreepAttack)),
		},
	}}
}

// For returns the action a kind performs under name.
func (as *Actions) For(kind Kind, name string) (Action, bool) {
	ac, ok := as.byKind[kind][name]
	return ac, ok
}

func newAction(name string, s config.ActionSettings, fx effect) Action {
	return Action{
		name:   name,
		checks: []check{targetPosition, withinDistance(s.Distance)},
		effect: fx,
	}
}

func newSpell(name string, s config.ActionSettings, fx effect) Action {
	ac := newAction(name, s, fx)
	ac.checks = append(ac.checks, offCooldown(name, s.CooldownKey, s.Cooldown))
	return ac
}

func moveEffect(a *attempt) string {
	if !a.world.InBounds(a.pos) {
		return EventOffTheMap
	}
	if obstacle, ok := a.world.Get(a.pos); ok {
		return fmt.Sprintf("hit %s with his head", obstacle.Base().Name)
	}
	a.world.relocate(a.actor, a.pos)
	return fmt.Sprintf("moved to %s", a.pos)
}

func attackEffect(s config.ActionSettings) effect {
	return func(a *attempt) string {
		target, ok := a.world.Get(a.pos)
		if !ok {
			return "nothing there to attack"
		}
		dmg := rollDamage(a.world.rng, a.actor, s)
		target.Base().Life -= dmg
		return fmt.Sprintf("damaged %s by %s", target.Base().Name, formatAmount(dmg))
	}
}

// inRadius lists, in registry order, the things within r of p.
func inRadius(w *World, p grid.Position, r float64) []Thing {
	var out []Thing
	for _, th := range w.All() {
		if grid.Distance(p, th.Base().Pos) <= r {
			out = append(out, th)
		}
	}
	return out
}

func healEffect(s config.ActionSettings) effect {
	return func(a *attempt) string {
		markUsed(a, s.CooldownKey)
		var bits []string
		for _, th := range inRadius(a.world, a.pos, s.Radius) {
			heal := rollDamage(a.world.rng, a.actor, s)
			b := th.Base()
			b.Life = math.Min(th.MaxLife(), b.Life+heal)
			bits = append(bits, fmt.Sprintf("healed %s by %s", b.Name, formatAmount(heal)))
		}
		if len(bits) == 0 {
			return "nothing there to heal"
		}
		return strings.Join(bits, ", ")
	}
}

func fireballEffect(s config.ActionSettings) effect {
	return func(a *attempt) string {
		markUsed(a, s.CooldownKey)
		var bits []string
		for _, th := range inRadius(a.world, a.pos, s.Radius) {
			dmg := rollDamage(a.world.rng, a.actor, s)
			th.Base().Life -= dmg
			bits = append(bits, fmt.Sprintf("damaged %s with fire by %s", th.Base().Name, formatAmount(dmg)))
		}
		if len(bits) == 0 {
			return "nothing there to burn"
		}
		return strings.Join(bits, ", ")
	}
}

func stunEffect(s config.ActionSettings) effect {
	return func(a *attempt) string {
		target, ok := a.world.Get(a.pos)
		if !ok {
			return "nothing there to stun"
		}
		target.Base().DisabledUntil = a.world.T + s.Duration
		markUsed(a, s.CooldownKey)
		return fmt.Sprintf("stunned %s", target.Base().Name)
	}
}
