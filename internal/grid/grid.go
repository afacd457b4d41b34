// Package grid holds the 2D geometry the simulation plays on: integer
// positions, euclidean distance, 8-way adjacency and free-cell searches.
package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

type Position struct{ X, Y int }

func (p Position) Add(d Position) Position { return Position{p.X + d.X, p.Y + d.Y} }
func (p Position) String() string          { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// MarshalJSON encodes a position as an [x, y] pair.
func (p Position) MarshalJSON() ([]byte, error) { return json.Marshal([2]int{p.X, p.Y}) }

func (p *Position) UnmarshalJSON(b []byte) error {
	var xy [2]int
	if err := json.Unmarshal(b, &xy); err != nil {
		return err
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

type Size struct{ W, H int }

func (s Size) Contains(p Position) bool { return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H }

// Board is what the free-cell searches need to know about the world.
type Board interface {
	Occupied(p Position) bool
	InBounds(p Position) bool
}

func Distance(a, b Position) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// neighbours in a fixed order so every search is deterministic.
var neighbours = []Position{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// AdjacentPositions returns the 8 cells around p, without bounds checks.
func AdjacentPositions(p Position) []Position {
	out := make([]Position, len(neighbours))
	for i, d := range neighbours {
		out[i] = p.Add(d)
	}
	return out
}

// PossibleMoves returns the adjacent cells of p that are inside the board
// and unoccupied.
func PossibleMoves(p Position, b Board) []Position {
	var out []Position
	for _, np := range AdjacentPositions(p) {
		if b.InBounds(np) && !b.Occupied(np) {
			out = append(out, np)
		}
	}
	return out
}

// SortByDistance orders positions by distance to target, ascending. Ties keep
// their input order.
func SortByDistance(target Position, positions []Position) []Position {
	out := append([]Position(nil), positions...)
	sort.SliceStable(out, func(i, j int) bool {
		return Distance(target, out[i]) < Distance(target, out[j])
	})
	return out
}

// Closest returns the item nearest to from. The first one wins ties.
func Closest[T any](from Position, items []T, pos func(T) Position) (T, bool) {
	var best T
	found := false
	bestDist := math.MaxFloat64
	for _, it := range items {
		d := Distance(from, pos(it))
		if d < bestDist {
			best, bestDist, found = it, d, true
		}
	}
	return best, found
}

// ClosestFreePosition walks the board breadth first from origin and returns
// the first unoccupied in-bounds cell. Occupied cells are walked through.
func ClosestFreePosition(origin Position, b Board) (Position, bool) {
	if !b.InBounds(origin) {
		return Position{}, false
	}
	seen := map[Position]bool{origin: true}
	queue := []Position{origin}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if !b.Occupied(p) {
			return p, true
		}
		for _, np := range AdjacentPositions(p) {
			if seen[np] || !b.InBounds(np) {
				continue
			}
			seen[np] = true
			queue = append(queue, np)
		}
	}
	return Position{}, false
}
