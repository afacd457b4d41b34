package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tota/internal/batch"
	"tota/internal/config"
	"tota/internal/game"
	"tota/internal/render"
	"tota/internal/replay"
	"tota/internal/util"
)

func main() {
	var cfgPath, mapPath, out, replayDir string
	var seed int64
	var n, workers int
	var fps float64
	var basic, debug, step, quiet, saveLog bool
	flag.StringVar(&cfgPath, "config", "assets/settings.yaml", "settings file")
	flag.StringVar(&mapPath, "map", "assets/map.txt", "map file")
	flag.StringVar(&out, "out", "", "result file (single) or summary file (batch)")
	flag.StringVar(&replayDir, "replay", "", "write one JSON frame per tick to this dir (single)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of games")
	flag.IntVar(&workers, "workers", 8, "parallel games in batch mode")
	flag.Float64Var(&fps, "fps", 2, "frames per second, 0 for as fast as possible")
	flag.BoolVar(&basic, "basic", false, "ascii icons only")
	flag.BoolVar(&debug, "debug", false, "print events and validate replay frames")
	flag.BoolVar(&step, "step", false, "wait for enter after every frame")
	flag.BoolVar(&quiet, "quiet", false, "do not draw the board")
	flag.BoolVar(&saveLog, "log", true, "save the full event log in the result when n==1")
	flag.Parse()

	logger := log.New(os.Stderr, "[tota] ", log.LstdFlags)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	mapText, err := os.ReadFile(mapPath)
	if err != nil {
		logger.Fatalf("map: %v", err)
	}

	if n > 1 {
		st, err := batch.Run(cfg, string(mapText), batch.Options{Runs: n, Workers: workers, Seed: seed, Logger: logger})
		if err != nil {
			logger.Printf("some games failed: %v", err)
		}
		fmt.Printf("Batch %d done: draws=%d wins=%v avg_ticks=%.1f\n", n, st.Draws, st.Wins, st.AvgTicks)
		if out != "" {
			if err := os.WriteFile(out, util.MarshalPretty(st), 0o644); err != nil {
				logger.Fatalf("write %s: %v", out, err)
			}
			fmt.Printf("summary -> %s\n", filepath.Base(out))
		}
		return
	}

	var drawers []game.Drawer
	if !quiet {
		opts := []render.Option{render.WithClear()}
		if basic {
			opts = append(opts, render.WithIcons(render.Basic))
		}
		if debug {
			opts = append(opts, render.WithDebug())
		}
		drawers = append(drawers, render.New(os.Stdout, opts...))
	}
	if replayDir != "" {
		var opts []replay.Option
		if debug {
			opts = append(opts, replay.Indented(), replay.Validated())
		}
		w, err := replay.NewWriter(replayDir, opts...)
		if err != nil {
			logger.Fatalf("replay: %v", err)
		}
		drawers = append(drawers, w)
	}
	if p := pacer(fps, step); p != nil && !quiet {
		drawers = append(drawers, p)
	}

	gameOpts := []game.Option{game.WithLogger(logger)}
	if debug {
		gameOpts = append(gameOpts, game.WithEventLogger(logger))
	}
	res, err := batch.RunSingle(cfg, string(mapText), seed, saveLog, gameOpts, drawers...)
	if err != nil {
		logger.Fatalf("game: %v", err)
	}
	fmt.Println()
	fmt.Println(res.Result)

	if out != "" {
		if err := os.WriteFile(out, util.MarshalPretty(res), 0o644); err != nil {
			logger.Fatalf("write %s: %v", out, err)
		}
		fmt.Printf("result -> %s\n", out)
	}
}

// pacer slows the game down to be watched, or waits for enter with step.
func pacer(fps float64, step bool) game.Drawer {
	if step {
		in := bufio.NewReader(os.Stdin)
		return game.DrawerFunc(func(*game.Game) error {
			_, err := in.ReadString('\n')
			return err
		})
	}
	if fps <= 0 {
		return nil
	}
	delay := time.Duration(float64(time.Second) / fps)
	return game.DrawerFunc(func(*game.Game) error {
		time.Sleep(delay)
		return nil
	})
}
