// Package replay dumps one JSON document per tick so a match can be viewed
// or analysed after the fact.
package replay

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tota/internal/game"
	"tota/internal/grid"
	"tota/internal/sim"
)

//go:embed tick.schema.json
var tickSchema string

const schemaURL = "tick.schema.json"

// Schema compiles the tick document schema.
func Schema() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, tickSchema)
}

// FileName is the frame file for tick t.
func FileName(t int) string { return fmt.Sprintf("%08d.json", t) }

type Writer struct {
	dir    string
	indent bool
	schema *jsonschema.Schema
}

type Option func(*Writer) error

// Indented pretty-prints frames.
func Indented() Option {
	return func(w *Writer) error {
		w.indent = true
		return nil
	}
}

// Validated checks every frame against the schema before writing it.
func Validated() Option {
	return func(w *Writer) error {
		s, err := Schema()
		if err != nil {
			return fmt.Errorf("replay schema: %w", err)
		}
		w.schema = s
		return nil
	}
}

// NewWriter creates dir if needed.
func NewWriter(dir string, opts ...Option) (*Writer, error) {
	w := &Writer{dir: dir}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay dir: %w", err)
	}
	return w, nil
}

func (w *Writer) Draw(g *game.Game) error { return w.Write(g.World.Snapshot()) }

func (w *Writer) Write(s sim.Snapshot) error {
	var (
		b   []byte
		err error
	)
	if w.indent {
		b, err = json.MarshalIndent(s, "", "  ")
	} else {
		b, err = json.Marshal(s)
	}
	if err != nil {
		return err
	}
	if w.schema != nil {
		if err := Validate(w.schema, b); err != nil {
			return fmt.Errorf("frame %d: %w", s.T, err)
		}
	}
	return os.WriteFile(filepath.Join(w.dir, FileName(s.T)), b, 0o644)
}

// Validate checks one encoded frame.
func Validate(s *jsonschema.Schema, frame []byte) error {
	var v any
	if err := json.Unmarshal(frame, &v); err != nil {
		return err
	}
	return s.Validate(v)
}

// Load reads back every frame in dir, ordered by tick.
func Load(dir string) ([]sim.Snapshot, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]sim.Snapshot, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		var s sim.Snapshot
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		for _, th := range s.Things {
			if th.Details != nil {
				th.Target = decodeTarget(th.Target)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// decodeTarget turns an [x, y] pair back into the position it was written
// from. Other targets were stored as text and stay that way.
func decodeTarget(v any) any {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return v
	}
	var xy [2]int
	for i, c := range pair {
		f, ok := c.(float64)
		if !ok || f != float64(int(f)) {
			return v
		}
		xy[i] = int(f)
	}
	return grid.Position{X: xy[0], Y: xy[1]}
}
