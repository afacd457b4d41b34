package sim

import (
	"tota/internal/config"
	"tota/internal/grid"
)

// Action names an Intent can carry.
const (
	ActMove     = "move"
	ActAttack   = "attack"
	ActHeal     = "heal"
	ActFireball = "fireball"
	ActStun     = "stun"
)

type Tree struct{ Entity }

func NewTree(cfg *config.Settings) *Tree {
	e, _ := newEntity(cfg, "tree", cfg.Life.Tree, cfg.Teams.Neutral, false)
	return &Tree{Entity: e}
}

func (*Tree) Kind() Kind { return KindTree }

// Ancient is a team's objective. It never acts.
type Ancient struct{ Entity }

func NewAncient(cfg *config.Settings, team string) (*Ancient, error) {
	e, err := newEntity(cfg, "ancient", cfg.Life.Ancient, team, false)
	if err != nil {
		return nil, err
	}
	return &Ancient{Entity: e}, nil
}

func (*Ancient) Kind() Kind { return KindAncient }

type Tower struct {
	Entity
	cfg *config.Settings
}

func NewTower(cfg *config.Settings, team string) (*Tower, error) {
	e, err := newEntity(cfg, "tower", cfg.Life.Tower, team, true)
	if err != nil {
		return nil, err
	}
	return &Tower{Entity: e, cfg: cfg}, nil
}

func (*Tower) Kind() Kind { return KindTower }

// Act shoots the nearest enemy in range.
func (tw *Tower) Act(things View, _ int) (Intent, bool) {
	enemy, ok := closestThing(tw.Pos, enemiesOf(tw.cfg, tw.Team, things))
	if !ok || grid.Distance(tw.Pos, enemy.Base().Pos) > tw.cfg.Actions.TowerAttack.Distance {
		return Intent{}, false
	}
	return Intent{Action: ActAttack, Target: enemy.Base().Pos}, true
}

type Creep struct {
	Entity
	cfg *config.Settings
}

func NewCreep(cfg *config.Settings, team string) (*Creep, error) {
	e, err := newEntity(cfg, "creep", cfg.Life.Creep, team, true)
	if err != nil {
		return nil, err
	}
	return &Creep{Entity: e, cfg: cfg}, nil
}

func (*Creep) Kind() Kind { return KindCreep }

// Act attacks the nearest enemy when it is in range. Otherwise the creep
// walks towards it, or towards the enemy ancient when the nearest enemy is
// beyond aggro distance.
func (c *Creep) Act(things View, _ int) (Intent, bool) {
	enemies := enemiesOf(c.cfg, c.Team, things)
	enemy, ok := closestThing(c.Pos, enemies)
	if !ok {
		return Intent{}, false
	}
	dist := grid.Distance(c.Pos, enemy.Base().Pos)
	if dist <= c.cfg.Actions.CreepAttack.Distance {
		return Intent{Action: ActAttack, Target: enemy.Base().Pos}, true
	}

	goal := enemy
	if dist > c.cfg.Creeps.AggroDistance {
		for _, th := range enemies {
			if th.Kind() == KindAncient {
				goal = th
				break
			}
		}
	}
	moves := grid.SortByDistance(goal.Base().Pos, grid.PossibleMoves(c.Pos, things))
	if len(moves) == 0 {
		return Intent{}, false
	}
	return Intent{Action: ActMove, Target: moves[0]}, true
}

// DecisionFunc is a hero script. It sees the live world and the current tick
// and must not mutate either.
type DecisionFunc func(self *Hero, things View, t int) (Intent, bool)

type Hero struct {
	Entity
	XP int

	decide DecisionFunc
	cfg    *config.Settings
}

func NewHero(cfg *config.Settings, name, team string, decide DecisionFunc) (*Hero, error) {
	e, err := newEntity(cfg, name, 0, team, true)
	if err != nil {
		return nil, err
	}
	h := &Hero{Entity: e, decide: decide, cfg: cfg}
	h.Life = h.MaxLife()
	return h, nil
}

func (*Hero) Kind() Kind { return KindHero }

func (h *Hero) Settings() *config.Settings { return h.cfg }

// Ready reports whether the cooldown behind key has run out at tick t.
func (h *Hero) Ready(s config.ActionSettings, t int) bool {
	last, used := h.LastUses[s.CooldownKey]
	return !used || t-last > s.Cooldown
}

func (h *Hero) Level() int { return h.XP / h.cfg.XP.ToLevel }

// MaxLife grows with level.
func (h *Hero) MaxLife() float64 {
	return h.cfg.Heroes.Life * (1 + float64(h.Level())*h.cfg.Heroes.LevelMultiplier)
}

func (h *Hero) Act(things View, t int) (Intent, bool) {
	if h.decide == nil {
		return Intent{}, false
	}
	return h.decide(h, things, t)
}
