package sim

import (
	"fmt"
	"strings"

	"tota/internal/grid"
)

// Map runes. Upper case belongs to radiant, lower case to dire.
const (
	MapTree           = '*'
	MapRadiantAncient = 'A'
	MapDireAncient    = 'a'
	MapRadiantTower   = 'T'
	MapDireTower      = 't'
)

// ImportMap places the trees, towers and ancients drawn in text, one line
// per row. It must run before the first tick. A world without a size takes
// the map's.
func (w *World) ImportMap(text string) error {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if w.size == (grid.Size{}) {
		width := 0
		for _, l := range lines {
			width = max(width, len([]rune(l)))
		}
		w.size = grid.Size{W: width, H: len(lines)}
	}

	for y, line := range lines {
		for x, r := range []rune(line) {
			th, err := w.mapThing(r)
			if err != nil {
				return fmt.Errorf("map %d:%d: %w", y+1, x+1, err)
			}
			if th == nil {
				continue
			}
			if err := w.Spawn(th, grid.Position{X: x, Y: y}); err != nil {
				return fmt.Errorf("map %d:%d: %w", y+1, x+1, err)
			}
		}
	}
	return nil
}

func (w *World) mapThing(r rune) (Thing, error) {
	teams := w.cfg.Teams
	switch r {
	case MapTree:
		return NewTree(w.cfg), nil
	case MapRadiantAncient:
		return NewAncient(w.cfg, teams.Radiant)
	case MapDireAncient:
		return NewAncient(w.cfg, teams.Dire)
	case MapRadiantTower:
		return NewTower(w.cfg, teams.Radiant)
	case MapDireTower:
		return NewTower(w.cfg, teams.Dire)
	}
	return nil, nil
}
