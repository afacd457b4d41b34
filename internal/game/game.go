// Package game sequences a match around the world: it spawns heroes and
// creep waves near their ancients, hands out experience, clears the dead and
// decides when a team has lost.
package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"tota/internal/config"
	"tota/internal/grid"
	"tota/internal/sim"
)

var (
	ErrAncient = errors.New("ancient misconfigured")
	ErrNoSpawn = errors.New("no free position near ancient")
)

// HeroSpec describes one hero to put on the map.
type HeroSpec struct {
	Name   string
	Team   string
	Decide sim.DecisionFunc
}

// Resolver turns a hero script name into its decision function.
type Resolver func(name string) (sim.DecisionFunc, error)

// SpecsFromLineup resolves the configured lineup, radiant first.
func SpecsFromLineup(cfg *config.Settings, resolve Resolver) ([]HeroSpec, error) {
	var specs []HeroSpec
	teams := []struct {
		team  string
		names []string
	}{
		{cfg.Teams.Radiant, cfg.Lineup.Radiant},
		{cfg.Teams.Dire, cfg.Lineup.Dire},
	}
	for _, tl := range teams {
		for _, name := range tl.names {
			decide, err := resolve(name)
			if err != nil {
				return nil, fmt.Errorf("lineup %s: %w", tl.team, err)
			}
			specs = append(specs, HeroSpec{Name: name, Team: tl.team, Decide: decide})
		}
	}
	return specs, nil
}

// Drawer is called after every tick.
type Drawer interface {
	Draw(g *Game) error
}

type DrawerFunc func(g *Game) error

func (f DrawerFunc) Draw(g *Game) error { return f(g) }

type Game struct {
	World  *sim.World
	Heroes []*sim.Hero

	cfg       *config.Settings
	ancients  map[string]*sim.Ancient
	respawnAt map[*sim.Hero]int
	logger    *log.Logger
	worldOpts []sim.Option
}

type Option func(*Game)

func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithEventLogger logs every world event as it happens.
func WithEventLogger(l *log.Logger) Option {
	return func(g *Game) { g.worldOpts = append(g.worldOpts, sim.WithLogger(l)) }
}

// New builds the world from mapText, checks each team has exactly one
// ancient and spawns the heroes next to them. Any failure here is fatal.
func New(cfg *config.Settings, mapText string, heroes []HeroSpec, rng *rand.Rand, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		ancients:  map[string]*sim.Ancient{},
		respawnAt: map[*sim.Hero]int{},
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.World = sim.NewWorld(cfg, grid.Size{W: cfg.World.Width, H: cfg.World.Height}, rng, g.worldOpts...)

	if err := g.World.ImportMap(mapText); err != nil {
		return nil, err
	}
	if err := g.cacheAncients(); err != nil {
		return nil, err
	}
	for _, spec := range heroes {
		h, err := sim.NewHero(cfg, spec.Name, spec.Team, spec.Decide)
		if err != nil {
			return nil, fmt.Errorf("hero %s: %w", spec.Name, err)
		}
		if _, ok := g.ancients[h.Team]; !ok {
			return nil, fmt.Errorf("hero %s: %w: team %q plays no ancient", spec.Name, sim.ErrInvalidTeam, h.Team)
		}
		if err := g.spawnNearAncient(h); err != nil {
			return nil, err
		}
		g.Heroes = append(g.Heroes, h)
	}
	return g, nil
}

func (g *Game) Settings() *config.Settings { return g.cfg }

func (g *Game) cacheAncients() error {
	found := map[string][]*sim.Ancient{}
	for _, th := range g.World.All() {
		if a, ok := th.(*sim.Ancient); ok {
			found[a.Team] = append(found[a.Team], a)
		}
	}
	for _, team := range g.cfg.Teams.Playing() {
		switch n := len(found[team]); n {
		case 0:
			return fmt.Errorf("%w: can't find the ancient for the %s team", ErrAncient, team)
		case 1:
			g.ancients[team] = found[team][0]
		default:
			return fmt.Errorf("%w: team %s has %d ancients", ErrAncient, team, n)
		}
	}
	return nil
}

// Ancient returns the cached ancient of team.
func (g *Game) Ancient(team string) *sim.Ancient { return g.ancients[team] }

func (g *Game) spawnNearAncient(th sim.Thing) error {
	b := th.Base()
	ancient := g.ancients[b.Team]
	at, ok := grid.ClosestFreePosition(ancient.Pos, g.World)
	if !ok {
		return fmt.Errorf("%w: can't spawn %s for %s", ErrNoSpawn, b.Name, b.Team)
	}
	return g.World.Spawn(th, at)
}

// Tick runs one orchestrated tick: creep wave, hero respawns, the world
// step, experience and cleanup. An error means the game cannot go on.
func (g *Game) Tick() error {
	w := g.World
	if w.T%g.cfg.Creeps.WaveCooldown == 0 {
		if err := g.spawnWave(); err != nil {
			return err
		}
	}
	g.respawnHeroes()
	w.Step()
	g.cleanDeads()
	return nil
}

func (g *Game) spawnWave() error {
	for _, team := range g.cfg.Teams.Playing() {
		for i := 0; i < g.cfg.Creeps.WaveSize; i++ {
			c, err := sim.NewCreep(g.cfg, team)
			if err != nil {
				return err
			}
			if err := g.spawnNearAncient(c); err != nil {
				return err
			}
		}
	}
	g.logger.Printf("t=%d creep wave: %d per team", g.World.T, g.cfg.Creeps.WaveSize)
	return nil
}

// Ended reports whether any ancient has fallen.
func (g *Game) Ended() bool { return len(g.destroyedAncients()) > 0 }

func (g *Game) destroyedAncients() []*sim.Ancient {
	var out []*sim.Ancient
	for _, team := range g.cfg.Teams.Playing() {
		if a := g.ancients[team]; a.Life <= 0 {
			out = append(out, a)
		}
	}
	return out
}

type Result struct {
	Ticks  int
	Losers []string
}

func (r Result) Draw() bool { return len(r.Losers) == 0 }

func (r Result) String() string {
	if r.Draw() {
		return fmt.Sprintf("Draw after %d ticks", r.Ticks)
	}
	lines := make([]string, len(r.Losers))
	for i, team := range r.Losers {
		lines[i] = fmt.Sprintf("Team %s lost!", team)
	}
	return strings.Join(lines, "\n")
}

// Result has one loser per destroyed ancient; both teams can lose at once.
func (g *Game) Result() Result {
	r := Result{Ticks: g.World.T}
	for _, a := range g.destroyedAncients() {
		r.Losers = append(r.Losers, a.Team)
	}
	return r
}

// Play ticks until an ancient falls or game.max_ticks is reached, calling
// every drawer after each tick. Pacing belongs to the drawers.
func (g *Game) Play(drawers ...Drawer) (Result, error) {
	for {
		if err := g.Tick(); err != nil {
			return g.Result(), err
		}
		for _, d := range drawers {
			if err := d.Draw(g); err != nil {
				return g.Result(), fmt.Errorf("draw t=%d: %w", g.World.T, err)
			}
		}
		if g.Ended() || (g.cfg.Game.MaxTicks > 0 && g.World.T >= g.cfg.Game.MaxTicks) {
			r := g.Result()
			g.logger.Printf("t=%d %s", g.World.T, strings.ReplaceAll(r.String(), "\n", "; "))
			return r, nil
		}
	}
}
