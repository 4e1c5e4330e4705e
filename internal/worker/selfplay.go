package worker

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Summary totals a batch of self-play games.
type Summary struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Unfinished int // stopped by the ply limit
	Errors     int
	TotalPlies int
}

// Add counts one result.
func (s *Summary) Add(r ProcessResult) {
	s.Games++
	switch {
	case r.Error != nil:
		s.Errors++
		return
	case !r.Result.HasWinner():
		s.Unfinished++
	case r.Result.Winner == chess.White:
		s.WhiteWins++
	default:
		s.BlackWins++
	}
	s.TotalPlies += r.Result.Plies
}

func (s Summary) String() string {
	avg := 0.0
	if played := s.Games - s.Errors; played > 0 {
		avg = float64(s.TotalPlies) / float64(played)
	}
	return fmt.Sprintf("%d games: White %d, Black %d, unfinished %d, errors %d, %.1f plies/game",
		s.Games, s.WhiteWins, s.BlackWins, s.Unfinished, s.Errors, avg)
}

// SelfPlayFunc returns a ProcessFunc playing CPU-vs-CPU games with the
// player settings and ply limit of cfg. Boards are never printed.
func SelfPlayFunc(cfg *config.Config) ProcessFunc {
	return func(ctx context.Context, item WorkItem) ProcessResult {
		res := ProcessResult{Index: item.Index, Seed: item.Seed}

		gameCfg := *cfg
		player, selfPlay := *cfg.PlayerConfig, *cfg.SelfPlayConfig
		gameCfg.PlayerConfig, gameCfg.SelfPlayConfig = &player, &selfPlay
		gameCfg.Verbosity = config.Silent
		gameCfg.OutputFile, gameCfg.LogFile = io.Discard, io.Discard
		gameCfg.WhiteCPU, gameCfg.BlackCPU = true, true

		g := game.New(&gameCfg)
		if item.FEN != "" {
			var err error
			if g, err = game.NewFromFEN(&gameCfg, item.FEN); err != nil {
				res.Error = err
				return res
			}
		}
		g.UseSources(game.NewCPUSource(item.Seed), game.NewCPUSource(item.Seed+1))
		res.Result, res.Error = g.Play(ctx)
		if res.Error == nil {
			res.View = g.View()
			res.View.ID = fmt.Sprintf("game-%d", item.Index+1)
		}
		return res
	}
}

// RunSelfPlay plays cfg.Games games on cfg.Workers workers and returns the
// results ordered by index. Game i is seeded with cfg.Seed + 2*i.
func RunSelfPlay(ctx context.Context, cfg *config.Config) ([]ProcessResult, Summary) {
	logger := cfg.Logger()
	pool := NewPool(SelfPlayFunc(cfg), WithWorkers(cfg.Workers), WithBufferSize(cfg.Workers*2))
	if cfg.Verbose(config.PerMove) {
		logger.Printf("playing %d games on %d workers", cfg.Games, pool.NumWorkers())
	}
	pool.Start(ctx)

	go func() {
		defer pool.Close()
		for i := 0; i < cfg.Games; i++ {
			if err := pool.Submit(ctx, WorkItem{Index: i, Seed: cfg.Seed + int64(2*i)}); err != nil {
				pool.Stop()
				return
			}
		}
	}()

	var (
		results []ProcessResult
		summary Summary
	)
	for r := range pool.Results() {
		if r.Error != nil {
			logger.Printf("game %d: %v", r.Index, r.Error)
		} else if cfg.Verbose(config.PerMove) {
			logger.Printf("game %d: %s", r.Index, r.Result)
		}
		summary.Add(r)
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results, summary
}
