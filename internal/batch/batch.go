// Package batch plays many seeded games of one setup side by side and sums
// up how they ended.
package batch

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	"tota/internal/config"
	"tota/internal/game"
	"tota/internal/heroes"
	"tota/internal/sim"
	"tota/internal/util"
)

type RunResult struct {
	Seed   int64          `json:"seed"`
	Ticks  int            `json:"ticks"`
	Result string         `json:"result"`
	Losers []string       `json:"losers,omitempty"`
	Winner string         `json:"winner,omitempty"`
	HeroXP map[string]int `json:"hero_xp"`
	Events []sim.Event    `json:"events,omitempty"`
}

// heroKey names a hero in results; lineups may repeat a script on both sides.
func heroKey(h *sim.Hero) string { return h.Team + "/" + h.Name }

// RunSingle plays the configured lineup on mapText with its own random
// source. With record set the full event log comes back with the result.
func RunSingle(cfg *config.Settings, mapText string, seed int64, record bool, opts []game.Option, drawers ...game.Drawer) (RunResult, error) {
	rng := util.New(seed)
	specs, err := game.SpecsFromLineup(cfg, heroes.Resolver(rng))
	if err != nil {
		return RunResult{Seed: seed}, err
	}
	g, err := game.New(cfg, mapText, specs, rng, opts...)
	if err != nil {
		return RunResult{Seed: seed}, err
	}
	r, err := g.Play(drawers...)
	res := RunResult{
		Seed:   seed,
		Ticks:  r.Ticks,
		Result: r.String(),
		Losers: r.Losers,
		HeroXP: map[string]int{},
	}
	if len(r.Losers) == 1 {
		res.Winner, _ = cfg.Teams.Enemy(r.Losers[0])
	}
	for _, h := range g.Heroes {
		res.HeroXP[heroKey(h)] += h.XP
	}
	if record {
		res.Events = g.World.Events()
	}
	return res, err
}

type Summary struct {
	Runs     int                `json:"runs"`
	Draws    int                `json:"draws"`
	Failed   int                `json:"failed"`
	Wins     map[string]int     `json:"wins"`
	WinRate  map[string]float64 `json:"win_rate"`
	AvgTicks float64            `json:"avg_ticks"`
	AvgXP    map[string]float64 `json:"avg_xp"`
}

type Options struct {
	Runs    int
	Workers int
	Seed    int64
	Logger  *log.Logger
}

// Run plays opts.Runs games, none when it is not positive; game i is seeded with Seed+i so the summary does
// not depend on scheduling. Failed games are counted and their errors joined.
func Run(cfg *config.Settings, mapText string, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 8
	}
	runs := max(opts.Runs, 0)

	st := Summary{
		Runs:    runs,
		Wins:    map[string]int{},
		WinRate: map[string]float64{},
		AvgXP:   map[string]float64{},
	}
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		sumTicks int
		played   int
		failures = map[int64]error{}
	)
	jobs := make(chan int64, runs)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				res, err := RunSingle(cfg, mapText, seed, false, nil)

				mu.Lock()
				if err != nil {
					st.Failed++
					failures[seed] = err
					mu.Unlock()
					continue
				}
				played++
				sumTicks += res.Ticks
				if len(res.Losers) == 0 {
					st.Draws++
				} else if res.Winner != "" {
					st.Wins[res.Winner]++
				}
				for k, xp := range res.HeroXP {
					st.AvgXP[k] += float64(xp)
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < runs; i++ {
		jobs <- opts.Seed + int64(i)
	}
	close(jobs)
	wg.Wait()

	if played > 0 {
		st.AvgTicks = float64(sumTicks) / float64(played)
		for k := range st.AvgXP {
			st.AvgXP[k] /= float64(played)
		}
		for _, team := range cfg.Teams.Playing() {
			st.WinRate[team] = float64(st.Wins[team]) / float64(played)
		}
	}
	logger.Printf("batch: %d runs, %d draws, %d failed, wins %v", st.Runs, st.Draws, st.Failed, st.Wins)
	return st, joinFailures(failures)
}

func joinFailures(failures map[int64]error) error {
	seeds := make([]int64, 0, len(failures))
	for s := range failures {
		seeds = append(seeds, s)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	errs := make([]error, len(seeds))
	for i, s := range seeds {
		errs[i] = fmt.Errorf("seed %d: %w", s, failures[s])
	}
	return errors.Join(errs...)
}
