package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tota/internal/config"
	"tota/internal/grid"
	"tota/internal/util"
)

func newTestWorld(t *testing.T, cfg *config.Settings, w, h int) *World {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	require.NoError(t, cfg.Validate())
	return NewWorld(cfg, grid.Size{W: w, H: h}, util.New(7))
}

func spawnAt(t *testing.T, w *World, th Thing, x, y int) {
	t.Helper()
	require.NoError(t, w.Spawn(th, grid.Position{X: x, Y: y}))
}

func newHero(t *testing.T, w *World, name, team string, decide DecisionFunc) *Hero {
	t.Helper()
	h, err := NewHero(w.Settings(), name, team, decide)
	require.NoError(t, err)
	return h
}

func newCreep(t *testing.T, w *World, team string) *Creep {
	t.Helper()
	c, err := NewCreep(w.Settings(), team)
	require.NoError(t, err)
	return c
}

// script replays intents in order, then idles.
func script(intents ...Intent) DecisionFunc {
	return func(*Hero, View, int) (Intent, bool) {
		if len(intents) == 0 {
			return Intent{}, false
		}
		next := intents[0]
		intents = intents[1:]
		return next, true
	}
}

func at(x, y int) grid.Position { return grid.Position{X: x, Y: y} }

// checkRegistry asserts the registry and the cached positions agree.
func checkRegistry(t *testing.T, w *World) {
	t.Helper()
	seen := map[grid.Position]bool{}
	for _, th := range w.All() {
		p := th.Base().Pos
		require.False(t, seen[p], "two things at %s", p)
		seen[p] = true
		got, ok := w.Get(p)
		require.True(t, ok)
		require.Same(t, th, got)
	}
}
