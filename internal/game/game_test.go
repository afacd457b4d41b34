package game

import (
	"bytes"
	"encoding/json"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tota/internal/config"
	"tota/internal/grid"
	"tota/internal/heroes"
	"tota/internal/sim"
	"tota/internal/util"
)

const lane = `
**********
*A      a*
*        *
**********
`

func quietSettings() *config.Settings {
	cfg := config.Default()
	cfg.Creeps.WaveSize = 0
	return cfg
}

func newGame(t *testing.T, cfg *config.Settings, mapText string, specs ...HeroSpec) *Game {
	t.Helper()
	require.NoError(t, cfg.Validate())
	g, err := New(cfg, mapText[1:], specs, util.New(5))
	require.NoError(t, err)
	return g
}

func idle(*sim.Hero, sim.View, int) (sim.Intent, bool) { return sim.Intent{}, false }

// hitOnce attacks target on its first turn and idles afterwards.
func hitOnce(target grid.Position) sim.DecisionFunc {
	done := false
	return func(*sim.Hero, sim.View, int) (sim.Intent, bool) {
		if done {
			return sim.Intent{}, false
		}
		done = true
		return sim.Intent{Action: sim.ActAttack, Target: target}, true
	}
}

func hero(t *testing.T, g *Game, name string) *sim.Hero {
	t.Helper()
	for _, h := range g.Heroes {
		if h.Name == name {
			return h
		}
	}
	t.Fatalf("no hero %s", name)
	return nil
}

// arrange moves heroes to fixed cells, clearing all of them first so
// targets may be cells another hero spawned on.
func arrange(t *testing.T, g *Game, at map[string]grid.Position) {
	t.Helper()
	for name := range at {
		require.True(t, g.World.Destroy(hero(t, g, name)))
	}
	for name, p := range at {
		require.NoError(t, g.World.Spawn(hero(t, g, name), p))
	}
}

func TestNewSpawnsHeroesNextToAncients(t *testing.T) {
	g := newGame(t, quietSettings(), lane,
		HeroSpec{Name: "r1", Team: "radiant", Decide: idle},
		HeroSpec{Name: "r2", Team: "radiant", Decide: idle},
		HeroSpec{Name: "d1", Team: "dire", Decide: idle},
	)
	assert.Equal(t, grid.Position{X: 2, Y: 1}, hero(t, g, "r1").Pos)
	assert.Equal(t, grid.Position{X: 1, Y: 2}, hero(t, g, "r2").Pos)
	assert.Equal(t, grid.Position{X: 7, Y: 1}, hero(t, g, "d1").Pos)
	assert.Equal(t, grid.Position{X: 1, Y: 1}, g.Ancient("radiant").Pos)
	assert.Equal(t, grid.Position{X: 8, Y: 1}, g.Ancient("dire").Pos)
	assert.Equal(t, 0, g.World.T)
}

func TestNewFailures(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		specs []HeroSpec
		err   error
	}{
		{"no dire ancient", "*A  *\n", nil, ErrAncient},
		{"two radiant ancients", "AA a\n", nil, ErrAncient},
		{"no room for hero", "*A*a\n", []HeroSpec{{Name: "h", Team: "radiant"}}, ErrNoSpawn},
		{"team without ancient", "A  a\n", []HeroSpec{{Name: "h", Team: "neutral"}}, sim.ErrInvalidTeam},
		{"unknown team", "A  a\n", []HeroSpec{{Name: "h", Team: "green"}}, sim.ErrInvalidTeam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(quietSettings(), tt.text, tt.specs, util.New(1))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCreepWaves(t *testing.T) {
	cfg := config.Default()
	cfg.Creeps.WaveSize = 2
	cfg.Creeps.WaveCooldown = 3
	g := newGame(t, cfg, lane)

	creeps := func() map[string]int {
		out := map[string]int{}
		for _, th := range g.World.All() {
			if th.Kind() == sim.KindCreep {
				out[th.Base().Team]++
			}
		}
		return out
	}

	require.NoError(t, g.Tick())
	assert.Equal(t, map[string]int{"radiant": 2, "dire": 2}, creeps())
	require.NoError(t, g.Tick())
	require.NoError(t, g.Tick())
	assert.Equal(t, map[string]int{"radiant": 2, "dire": 2}, creeps())
	require.NoError(t, g.Tick())
	assert.Equal(t, map[string]int{"radiant": 4, "dire": 4}, creeps())
}

func TestWaveWithoutRoomIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Creeps.WaveSize = 3
	g := newGame(t, cfg, "\n*A a\n")
	assert.ErrorIs(t, g.Tick(), ErrNoSpawn)
}

func killSetup(t *testing.T, cfg *config.Settings) *Game {
	t.Helper()
	cfg.Actions.HeroAttack.Damage = [2]int{1000, 1000}
	cfg.XP.Distance = 3
	g := newGame(t, cfg, lane,
		HeroSpec{Name: "killer", Team: "radiant", Decide: hitOnce(grid.Position{X: 4, Y: 1})},
		HeroSpec{Name: "ally", Team: "radiant", Decide: idle},
		HeroSpec{Name: "far", Team: "radiant", Decide: idle},
		HeroSpec{Name: "victim", Team: "dire", Decide: idle},
	)
	arrange(t, g, map[string]grid.Position{
		"killer": {X: 3, Y: 1},
		"victim": {X: 4, Y: 1},
		"ally":   {X: 5, Y: 2},
		"far":    {X: 7, Y: 1},
	})
	return g
}

func TestExperienceAwardedOnce(t *testing.T) {
	cfg := quietSettings()
	g := killSetup(t, cfg)

	require.NoError(t, g.Tick())
	victim := hero(t, g, "victim")
	assert.False(t, victim.Alive())
	assert.False(t, g.World.Occupied(grid.Position{X: 4, Y: 1}), "the dead are removed")

	assert.Equal(t, cfg.XP.HeroDead, hero(t, g, "killer").XP)
	assert.Equal(t, cfg.XP.HeroDead, hero(t, g, "ally").XP)
	assert.Zero(t, hero(t, g, "far").XP, "exactly xp distance away is too far")
	assert.Zero(t, victim.XP)

	require.NoError(t, g.Tick())
	assert.Equal(t, cfg.XP.HeroDead, hero(t, g, "killer").XP)
}

func TestHeroRespawn(t *testing.T) {
	cfg := quietSettings()
	cfg.Heroes.RespawnTicks = 2
	g := killSetup(t, cfg)
	victim := hero(t, g, "victim")

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Tick())
		_, there := g.World.Get(victim.Pos)
		assert.False(t, there && victim.Alive(), "tick %d", g.World.T)
	}
	require.NoError(t, g.Tick())
	got, ok := g.World.Get(victim.Pos)
	require.True(t, ok)
	assert.Same(t, sim.Thing(victim), got)
	assert.Equal(t, victim.MaxLife(), victim.Life)
	assert.Equal(t, grid.Position{X: 7, Y: 2}, victim.Pos)
}

func TestResult(t *testing.T) {
	g := newGame(t, quietSettings(), lane)
	assert.False(t, g.Ended())
	assert.True(t, g.Result().Draw())

	g.Ancient("dire").Life = 0
	assert.True(t, g.Ended())
	assert.Equal(t, "Team dire lost!", g.Result().String())

	g.Ancient("radiant").Life = -4
	assert.Equal(t, []string{"radiant", "dire"}, g.Result().Losers)
	assert.Equal(t, "Team radiant lost!\nTeam dire lost!", g.Result().String())
}

func TestPlayDrawsAfterMaxTicks(t *testing.T) {
	cfg := quietSettings()
	cfg.Game.MaxTicks = 5
	g := newGame(t, cfg, lane)

	var drawn []int
	r, err := g.Play(DrawerFunc(func(g *Game) error {
		drawn = append(drawn, g.World.T)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, drawn)
	assert.True(t, r.Draw())
	assert.Equal(t, "Draw after 5 ticks", r.String())
}

func TestPlayEndsWhenAncientFalls(t *testing.T) {
	cfg := quietSettings()
	cfg.Actions.HeroAttack.Damage = [2]int{1000, 1000}
	var buf bytes.Buffer
	g, err := New(cfg, lane[1:], []HeroSpec{{
		Name: "sieger", Team: "radiant",
		Decide: func(*sim.Hero, sim.View, int) (sim.Intent, bool) {
			return sim.Intent{Action: sim.ActAttack, Target: grid.Position{X: 8, Y: 1}}, true
		},
	}}, util.New(1), WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	arrange(t, g, map[string]grid.Position{"sieger": {X: 7, Y: 1}})

	r, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, Result{Ticks: 1, Losers: []string{"dire"}}, r)
	assert.False(t, g.World.Occupied(grid.Position{X: 8, Y: 1}))
	assert.Contains(t, buf.String(), "t=1 Team dire lost!")
}

func TestSpecsFromLineup(t *testing.T) {
	cfg := config.Default()
	cfg.Lineup = config.Lineup{Radiant: []string{"hunter", "noob"}, Dire: []string{"noob"}}
	specs, err := SpecsFromLineup(cfg, heroes.Resolver(util.New(1)))
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "hunter", specs[0].Name)
	assert.Equal(t, "radiant", specs[1].Team)
	assert.Equal(t, "dire", specs[2].Team)

	cfg.Lineup.Dire = []string{"ghost"}
	_, err = SpecsFromLineup(cfg, heroes.Resolver(util.New(1)))
	assert.ErrorIs(t, err, heroes.ErrUnknownHero)
}

const arena = `
******************************
*                            *
*     T              t       *
*A           **             a*
*     T              t       *
*                            *
******************************
`

type eventLine struct {
	T          int
	ID, Text   string
	Name, Team string
}

func playArena(t *testing.T, seed int64) ([]eventLine, []byte, Result) {
	t.Helper()
	cfg := config.Default()
	cfg.Game.MaxTicks = 150
	cfg.Heroes.RespawnTicks = 10
	rng := util.New(seed)
	cfg.Lineup = config.Lineup{Radiant: []string{"hunter", "noob"}, Dire: []string{"noob", "hunter"}}
	specs, err := SpecsFromLineup(cfg, heroes.Resolver(rng))
	require.NoError(t, err)
	g, err := New(cfg, arena[1:], specs, rng)
	require.NoError(t, err)

	r, err := g.Play()
	require.NoError(t, err)

	var lines []eventLine
	for _, ev := range g.World.Events() {
		lines = append(lines, eventLine{T: ev.T, ID: ev.ID, Text: ev.Text, Name: ev.Name, Team: ev.Team})
	}
	snap, err := json.Marshal(g.World.Snapshot())
	require.NoError(t, err)
	return lines, snap, r
}

func TestSameSeedSameGame(t *testing.T) {
	e1, s1, r1 := playArena(t, 42)
	e2, s2, r2 := playArena(t, 42)
	require.NotEmpty(t, e1)
	assert.Equal(t, e1, e2)
	assert.JSONEq(t, string(s1), string(s2))
	assert.Equal(t, r1, r2)
}
