package game

import (
	"tota/internal/grid"
	"tota/internal/sim"
)

func (g *Game) xpFor(k sim.Kind) int {
	switch k {
	case sim.KindCreep:
		return g.cfg.XP.CreepDead
	case sim.KindHero:
		return g.cfg.XP.HeroDead
	case sim.KindTower:
		return g.cfg.XP.TowerDead
	}
	// an ancient's death ends the game instead
	return 0
}

func (g *Game) inWorld(h *sim.Hero) bool {
	th, ok := g.World.Get(h.Pos)
	return ok && th == sim.Thing(h)
}

// cleanDeads awards experience for everything that died this tick and then
// removes the dead. Awards only read positions, so the order of victims does
// not matter.
func (g *Game) cleanDeads() {
	var dead []sim.Thing
	for _, th := range g.World.All() {
		if th.Base().Life <= 0 {
			dead = append(dead, th)
		}
	}
	for _, victim := range dead {
		g.awardExperience(victim)
	}
	for _, victim := range dead {
		g.World.Destroy(victim)
		b := victim.Base()
		g.logger.Printf("t=%d %s (%s) died at %s", g.World.T, b.Name, b.Team, b.Pos)
		if h, ok := victim.(*sim.Hero); ok && g.cfg.Heroes.RespawnTicks > 0 {
			g.respawnAt[h] = g.World.T + g.cfg.Heroes.RespawnTicks
		}
	}
}

// awardExperience gives every other hero on the map within xp distance the
// victim's bounty.
func (g *Game) awardExperience(victim sim.Thing) {
	xp := g.xpFor(victim.Kind())
	if xp == 0 {
		return
	}
	at := victim.Base().Pos
	for _, h := range g.Heroes {
		if sim.Thing(h) == victim || !g.inWorld(h) {
			continue
		}
		if grid.Distance(h.Pos, at) < g.cfg.XP.Distance {
			h.XP += xp
		}
	}
}

// respawnHeroes brings back dead heroes whose delay is over, with full life.
// A hero with no free cell near its ancient waits for the next tick.
func (g *Game) respawnHeroes() {
	for _, h := range g.Heroes {
		at, waiting := g.respawnAt[h]
		if !waiting || g.World.T < at {
			continue
		}
		h.Life = h.MaxLife()
		h.DisabledUntil = 0
		h.LastAction, h.LastTarget = "", nil
		if err := g.spawnNearAncient(h); err != nil {
			g.logger.Printf("t=%d respawn %s: %v", g.World.T, h.Name, err)
			continue
		}
		delete(g.respawnAt, h)
		g.logger.Printf("t=%d %s (%s) respawned at %s", g.World.T, h.Name, h.Team, h.Pos)
	}
}
